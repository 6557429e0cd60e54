package database

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Dialect is the database/sql driver name plus the SQL differences the
// repositories care about.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// Rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SupportsReturning reports whether INSERT ... RETURNING id is used to read
// the generated key instead of LastInsertId.
func (d Dialect) SupportsReturning() bool {
	return d == Postgres
}

// ResolveDSN picks the dialect for rawURL and converts the URL into the DSN
// format its driver expects. An empty driver is inferred from the URL scheme.
func ResolveDSN(rawURL, driver string) (Dialect, string, error) {
	dialect, err := resolveDialect(rawURL, driver)
	if err != nil {
		return "", "", err
	}

	switch dialect {
	case MySQL:
		dsn, err := mysqlDSN(rawURL)
		return dialect, dsn, err
	case SQLite:
		for _, prefix := range []string{"sqlite3://", "sqlite://"} {
			if strings.HasPrefix(rawURL, prefix) {
				return dialect, strings.TrimPrefix(rawURL, prefix), nil
			}
		}
		return dialect, rawURL, nil
	default:
		return dialect, rawURL, nil
	}
}

func resolveDialect(rawURL, driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}

	scheme, _, found := strings.Cut(rawURL, ":")
	if !found {
		return "", fmt.Errorf("database driver cannot be inferred from DATABASE_URL, set DB_DRIVER")
	}

	switch strings.ToLower(scheme) {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3", "file":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database URL scheme %q", scheme)
	}
}

// mysqlDSN accepts both mysql:// URLs and native go-sql-driver DSNs.
func mysqlDSN(raw string) (string, error) {
	if !strings.HasPrefix(raw, "mysql://") {
		if _, err := mysql.ParseDSN(raw); err != nil {
			return "", fmt.Errorf("invalid mysql DSN: %w", err)
		}
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid mysql URL: %w", err)
	}

	cfg := mysql.NewConfig()
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)
	cfg.DBName = strings.TrimPrefix(u.Path, "/")

	params := url.Values{}
	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		switch {
		case key == "ssl" || key == "sslaccept" || key == "tls":
			params.Set("tls", "true")
		case mysqlParams[key]:
			params.Set(key, values[0])
		}
	}

	dsn := cfg.FormatDSN()
	if len(params) == 0 {
		return dsn, nil
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	parsed, err := mysql.ParseDSN(dsn + sep + params.Encode())
	if err != nil {
		return "", fmt.Errorf("invalid mysql URL parameters: %w", err)
	}
	return parsed.FormatDSN(), nil
}

// mysqlParams are the DSN parameters go-sql-driver understands. Anything else
// would be sent to the server as a session variable, so URL options meant for
// other clients (connectionLimit, waitForConnections) are dropped.
var mysqlParams = map[string]bool{
	"allowAllFiles":           true,
	"allowCleartextPasswords": true,
	"allowNativePasswords":    true,
	"allowOldPasswords":       true,
	"charset":                 true,
	"checkConnLiveness":       true,
	"clientFoundRows":         true,
	"collation":               true,
	"columnsWithAlias":        true,
	"interpolateParams":       true,
	"loc":                     true,
	"maxAllowedPacket":        true,
	"multiStatements":         true,
	"parseTime":               true,
	"readTimeout":             true,
	"rejectReadOnly":          true,
	"timeout":                 true,
	"writeTimeout":            true,
}

// IgnoredURLParams lists the query parameters of a mysql:// URL that ResolveDSN
// drops.
func IgnoredURLParams(rawURL string) []string {
	if !strings.HasPrefix(rawURL, "mysql://") {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	var ignored []string
	for key := range u.Query() {
		switch {
		case key == "ssl" || key == "sslaccept" || key == "tls", mysqlParams[key]:
		default:
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)
	return ignored
}
