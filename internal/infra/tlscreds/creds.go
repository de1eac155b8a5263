// Package tlscreds provides TLS server credential management.
package tlscreds

import (
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNoCertificates is returned when no certificates are found in a PEM file.
	ErrNoCertificates = errors.New("tlscreds: no certificates found in PEM file")

	// ErrNoPrivateKey is returned when no RSA private key is found in a PEM file.
	ErrNoPrivateKey = errors.New("tlscreds: no RSA private key found in PEM file")

	// ErrMultipleKeys is returned when the key file holds more than one private key.
	ErrMultipleKeys = errors.New("tlscreds: expected exactly one private key")

	// ErrKeyMismatch is returned when the private key does not correspond to
	// the leaf certificate.
	ErrKeyMismatch = errors.New("tlscreds: private key does not match leaf certificate")
)

// LoadCertificates reads a PEM file and returns all CERTIFICATE blocks as
// DER-encoded certificates, in file order. The first certificate is the leaf.
func LoadCertificates(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tlscreds: read cert file %s: %w", path, err)
	}

	var ders [][]byte
	for len(data) > 0 {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		ders = append(ders, block.Bytes)
	}

	if len(ders) == 0 {
		return nil, ErrNoCertificates
	}

	return ders, nil
}

// LoadPrivateKey reads a PEM file and returns the single RSA private key it
// holds. Zero keys or more than one key is an error.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tlscreds: read key file %s: %w", path, err)
	}

	var keys []*rsa.PrivateKey
	for len(data) > 0 {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "RSA PRIVATE KEY" {
			continue
		}
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("tlscreds: parse private key: %w", err)
		}
		keys = append(keys, key)
	}

	switch len(keys) {
	case 0:
		return nil, ErrNoPrivateKey
	case 1:
		return keys[0], nil
	default:
		return nil, ErrMultipleKeys
	}
}

// LoadKeyPair loads a certificate chain and its private key from two PEM
// files and assembles a tls.Certificate. The key must correspond to the leaf
// certificate.
func LoadKeyPair(certFile, keyFile string) (tls.Certificate, error) {
	ders, err := LoadCertificates(certFile)
	if err != nil {
		return tls.Certificate{}, err
	}

	key, err := LoadPrivateKey(keyFile)
	if err != nil {
		return tls.Certificate{}, err
	}

	leaf, err := x509.ParseCertificate(ders[0])
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("tlscreds: parse leaf certificate: %w", err)
	}

	pub, ok := leaf.PublicKey.(*rsa.PublicKey)
	if !ok || !pub.Equal(&key.PublicKey) {
		return tls.Certificate{}, ErrKeyMismatch
	}

	return tls.Certificate{
		Certificate: ders,
		PrivateKey:  key,
		Leaf:        leaf,
	}, nil
}

// ServerConfig builds the shared server-side TLS configuration for a single
// certificate. No client certificate verification is configured: any client
// is trusted. The returned config is immutable by convention and safe to
// share across all accepted connections.
func ServerConfig(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
}
