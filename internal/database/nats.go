package database

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// ConnectNats establishes a connection to the NATS server at the supplied URL.
func ConnectNats(url string) (*nats.Conn, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url must not be empty")
	}

	conn, err := nats.Connect(url, nats.Name("portfolio-contact-api"))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return conn, nil
}
