package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// DSNValue returns the explicit DSN or builds one for the configured driver.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}
	if c.Driver == DriverPostgres {
		return c.postgresDSN()
	}
	return c.mysqlDSN()
}

func (c DatabaseRuntimeConfig) mysqlDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Name
	cfg.ParseTime = c.ParseTime

	params := map[string]string{"charset": c.Charset}
	for k, v := range c.Params {
		params[k] = v
	}
	if loc := c.Loc; loc != "" {
		params["loc"] = loc
	}
	cfg.Params = params

	return cfg.FormatDSN()
}

func (c DatabaseRuntimeConfig) postgresDSN() string {
	parts := []string{
		"host=" + c.Host,
		"port=" + strconv.Itoa(c.Port),
		"user=" + c.User,
		"dbname=" + c.Name,
	}
	if c.Password != "" {
		parts = append(parts, "password="+c.Password)
	}
	keys := make([]string, 0, len(c.Params))
	for k := range c.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	hasSSL := false
	for _, k := range keys {
		if k == "sslmode" {
			hasSSL = true
		}
		parts = append(parts, k+"="+c.Params[k])
	}
	if !hasSSL {
		parts = append(parts, "sslmode=disable")
	}
	return strings.Join(parts, " ")
}

// ValidateDSN parses MySQL DSNs with the driver's own parser.
func (c DatabaseRuntimeConfig) ValidateDSN() error {
	dsn := c.DSNValue()
	switch c.Driver {
	case DriverMySQL:
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return fmt.Errorf("invalid mysql dsn: %w", err)
		}
	case DriverPostgres:
		if strings.TrimSpace(dsn) == "" {
			return fmt.Errorf("empty postgres dsn")
		}
	}
	return nil
}

func (c RedisRuntimeConfig) URLValue() string {
	if u := normalizeRedisRawURL(c.URL); u != "" {
		return u
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	switch {
	case c.Username != "" && c.Password != "":
		u.User = neturl.UserPassword(c.Username, c.Password)
	case c.Username != "":
		u.User = neturl.User(c.Username)
	case c.Password != "":
		u.User = neturl.UserPassword("", c.Password)
	}
	return u.String()
}
