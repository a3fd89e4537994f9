package model

import (
	"context"
	"net"
)

// SecurityLayer opens a plain or TLS listener.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network server started on a SecurityLayer.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
