package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coldspire/cqlwire/client"
	"github.com/coldspire/cqlwire/frame"
	"github.com/coldspire/cqlwire/message"
	"github.com/coldspire/cqlwire/primitive"
)

// main is a small command-line client: it connects to a CQL endpoint, negotiates the connection, issues a single
// query, and prints the result.
func main() {
	host := flag.String("host", client.DefaultHost, "contact point host")
	port := flag.Int("port", client.DefaultPort, "contact point port")
	query := flag.String("query", "SELECT * FROM system.local", "query to execute")
	noCompress := flag.Bool("no-compress", false, "disable compression negotiation")
	logLevel := flag.Int("logLevel", int(zerolog.InfoLevel), "the log level to use")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.Level(*logLevel))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFormatUnix})

	dialer := client.NewDialer(*host)
	dialer.Port = *port
	dialer.NoCompress = *noCompress

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := dialer.ConnectAndInit(ctx, primitive.ProtocolVersion4)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	request := nextFrame(*query)
	response, err := conn.SendAndReceive(request)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query failed: %v\n", err)
		os.Exit(1)
	}

	switch result := response.Body.Message.(type) {
	case *message.RowsResult:
		printRows(result)
	default:
		fmt.Printf("%v\n", result)
	}
}

func nextFrame(query string) *frame.Frame {
	return frame.NewFrame(
		primitive.ProtocolVersion4,
		client.ManagedStreamId,
		&message.Query{
			Query:   query,
			Options: &message.QueryOptions{Consistency: primitive.ConsistencyLevelOne},
		},
	)
}

func printRows(result *message.RowsResult) {
	if result.Metadata != nil {
		names := make([]string, len(result.Metadata.Columns))
		for i, column := range result.Metadata.Columns {
			names[i] = column.Name
		}
		fmt.Println(names)
	}
	for _, row := range result.Data {
		fmt.Println(row)
	}
}
