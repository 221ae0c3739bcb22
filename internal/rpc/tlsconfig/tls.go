// Package tlsconfig builds mutual-TLS credentials for bank and gateway
// nodes, per spec.md §6: every bank-gateway and client-gateway connection
// is mutually authenticated from a shared certs/ directory holding ca.crt
// plus a <role>.crt / <role>.key pair per node. This is the one place the
// repo leans on crypto/tls and x509 directly — nothing in the example
// pack wraps mutual TLS in a third-party loader, so the standard library
// is the idiomatic choice here (see DESIGN.md).
package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/grpc/credentials"
)

// Materials is the parsed (cert, key, CA pool) triple for one node.
type Materials struct {
	Cert tls.Certificate
	Pool *x509.CertPool
}

// Load reads ca.crt and <role>.crt/<role>.key from dir.
func Load(dir, role string) (*Materials, error) {
	certPath := filepath.Join(dir, role+".crt")
	keyPath := filepath.Join(dir, role+".key")
	caPath := filepath.Join(dir, "ca.crt")

	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("tlsconfig: load keypair for %s: %w", role, err)
	}

	caBytes, err := os.ReadFile(caPath)
	if err != nil {
		return nil, fmt.Errorf("tlsconfig: read ca cert: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caBytes) {
		return nil, fmt.Errorf("tlsconfig: no certificates parsed from %s", caPath)
	}

	return &Materials{Cert: cert, Pool: pool}, nil
}

// ServerCredentials builds grpc server-side transport credentials that
// require and verify a client certificate signed by the shared CA.
func ServerCredentials(dir, role string) (credentials.TransportCredentials, error) {
	m, err := Load(dir, role)
	if err != nil {
		return nil, err
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{m.Cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    m.Pool,
		MinVersion:   tls.VersionTLS12,
	}
	return credentials.NewTLS(cfg), nil
}

// ClientCredentials builds grpc client-side transport credentials that
// present a client certificate and verify the server against the shared
// CA. serverName must match the CN/SAN on the target's certificate.
func ClientCredentials(dir, role, serverName string) (credentials.TransportCredentials, error) {
	m, err := Load(dir, role)
	if err != nil {
		return nil, err
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{m.Cert},
		RootCAs:      m.Pool,
		ServerName:   serverName,
		MinVersion:   tls.VersionTLS12,
	}
	return credentials.NewTLS(cfg), nil
}
