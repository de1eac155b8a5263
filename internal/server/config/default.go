// Package config provides server configuration for echotls-server.
package config

// Default configuration values.
const (
	// DefaultAddr is the listen address used when no port argument is given.
	DefaultAddr = "127.0.0.1:1338"

	DefaultCertFile = "cert_util/localhost.pem"
	DefaultKeyFile  = "cert_util/localhost.key"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr: DefaultAddr,
			TLS: TLSConfig{
				CertFile: DefaultCertFile,
				KeyFile:  DefaultKeyFile,
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
