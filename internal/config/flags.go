package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver ("postgres" or "sqlite")
//	-loop-cache loop detection cache file path
//	-c/-config json file path with configs
//	-ping-interval change poll interval (e.g., "30s")
//	-heartbeat-min/-heartbeat-max long-poll lifetime bounds
//	-window-size default per-collection window size
//	-max-window-size window size ceiling
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var loopCachePath string
	var jsonConfigPath string
	var pingInterval time.Duration
	var heartbeatMin time.Duration
	var heartbeatMax time.Duration
	var windowSize int
	var maxWindowSize int
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (postgres or sqlite)")
	flag.StringVar(&loopCachePath, "loop-cache", "", "Loop detection cache file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&pingInterval, "ping-interval", 0, "Change poll interval (e.g., 30s)")
	flag.DurationVar(&heartbeatMin, "heartbeat-min", 0, "Minimum long-poll lifetime (e.g., 60s)")
	flag.DurationVar(&heartbeatMax, "heartbeat-max", 0, "Maximum long-poll lifetime (e.g., 59m)")
	flag.IntVar(&windowSize, "window-size", 0, "Default per-collection window size")
	flag.IntVar(&maxWindowSize, "max-window-size", 0, "Window size ceiling")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: Database{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			LoopCachePath: loopCachePath,
		},
		Sync: Sync{
			PingInterval:      pingInterval,
			HeartbeatMin:      heartbeatMin,
			HeartbeatMax:      heartbeatMax,
			DefaultWindowSize: windowSize,
			MaxWindowSize:     maxWindowSize,
		},
		Workers:      Workers{},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
