package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// stringList is a comma separated flag.Value.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*s = append(*s, item)
		}
	}
	return nil
}

// ParseFlags parses command-line arguments into a partial config.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (sqlite3, pgx)
//	-f filesystem storage root
//	-c/-config json file path with configs
//	-r repositories to ensure at startup (comma separated)
//	-public repositories readable anonymously (comma separated)
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "720h")
//	-request-timeout server request timeout (e.g., "30s")
//	-repo repository holding the vault and content ("owner/name")
//	-site published site URL
//	-api contents API base URL
//	-api-timeout contents API request timeout
//	-kdf vault key derivation for new envelopes (pbkdf2, argon2id)
//	-refresh-interval content refresh interval
//	-log-level log level
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var repositories, publicRepositories stringList
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("onlyfan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "driver", "", "Database driver (sqlite3, pgx)")
	fs.StringVar(&cfg.Storage.Files.RootDir, "f", "", "Filesystem storage root")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.Var(&repositories, "r", "Repositories to ensure at startup")
	fs.Var(&publicRepositories, "public", "Repositories readable anonymously")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 720h)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.App.Repository, "repo", "", "Repository owner/name")
	fs.StringVar(&cfg.App.SiteURL, "site", "", "Published site URL")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "api", "", "Contents API base URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "api-timeout", 0, "Contents API request timeout")
	fs.StringVar(&cfg.App.VaultKDF, "kdf", "", "Vault key derivation (pbkdf2, argon2id)")
	fs.DurationVar(&cfg.Workers.RefreshInterval, "refresh-interval", 0, "Content refresh interval")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.Repositories = repositories
	cfg.Server.PublicRepositories = publicRepositories

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
