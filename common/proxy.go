package common

import (
	"context"
	"net"

	"h12.io/socks"
)

// ProxySession dials through a single forward-proxy session. A new value is
// built per outbound call so every request can carry a fresh session id.
type ProxySession struct {
	Proxy string
}

func (s *ProxySession) DialContext(ctx context.Context, network string, addr string) (net.Conn, error) {
	dial := socks.Dial(s.Proxy)
	return dial(network, addr)
}

func (s *ProxySession) Dial(network string, addr string) (net.Conn, error) {
	return socks.Dial(s.Proxy)(network, addr)
}
