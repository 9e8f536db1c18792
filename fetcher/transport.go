package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	tls "github.com/refraction-networking/utls"
)

// dialer is shared by the plain and TLS paths. It sets no connect timeout;
// the client Timeout and the request context bound every dial.
var dialer = &net.Dialer{KeepAlive: 30 * time.Second}

// newTransport builds the outbound transport. Proxies come from the
// standard HTTP_PROXY / HTTPS_PROXY / NO_PROXY variables.
//
// DialTLSContext only covers direct connections. An https target reached
// through an HTTP proxy is tunnelled with CONNECT and handshaken by
// crypto/tls, so it does not carry the Chrome fingerprint.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		DialTLSContext:      dialTLSChrome,
		ForceAttemptHTTP2:   false,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
}

// chromeH1Spec returns a Chrome-like ClientHello with ALPN forced to
// http/1.1, since http.Transport cannot speak h2 over a utls conn.
// A fresh spec is built per connection; ApplyPreset keeps references to
// the extensions it is given.
func chromeH1Spec() (*tls.ClientHelloSpec, error) {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return nil, err
	}
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	return &spec, nil
}

// dialTLSChrome establishes a TLS connection using the Chrome fingerprint.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	spec, err := chromeH1Spec()
	if err != nil {
		return nil, fmt.Errorf("fetcher: build tls spec: %w", err)
	}

	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("fetcher: apply tls spec: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}
