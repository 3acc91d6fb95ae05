//nolint:errcheck // testsetup
package tcnats

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/nats-io/nats.go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NATSContainer runs a nats server with jetstream enabled
type NATSContainer struct {
	testcontainers.Container
	URL string
}

// SetupNATS starts (or reuses) the nats test container
func SetupNATS(ctx context.Context) (*NATSContainer, error) {
	port, err := nat.NewPort("tcp", "4222")
	if err != nil {
		return nil, err
	}
	req := testcontainers.ContainerRequest{
		Image:        "nats:2.11",
		Name:         "triathlon-pacer-nats-test",
		ExposedPorts: []string{port.Port()},
		Cmd:          []string{"-js"},
		WaitingFor: wait.ForLog("Server is ready").
			WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(
		ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
			Reuse:            true,
		})
	if err != nil {
		return nil, err
	}
	containerPort, err := container.MappedPort(ctx, port)
	if err != nil {
		return nil, err
	}
	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	return &NATSContainer{
		Container: container,
		URL:       fmt.Sprintf("nats://%s:%s", host, containerPort.Port()),
	}, nil
}

// InitTestNATS returns a connection to the nats test server.
// The server given by env TESTNATS_URL is used if present.
func InitTestNATS() *nats.Conn {
	url := os.Getenv("TESTNATS_URL")
	if url == "" {
		c, err := SetupNATS(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		url = c.URL
	}
	nc, err := nats.Connect(url)
	if err != nil {
		log.Fatal(err)
	}
	return nc
}
