package config // package config loads application configuration from environment variables

import (
	"log"      // log is used to report configuration errors and halt execution
	"os"       // os provides access to environment variables
	"strconv"  // strconv converts strings to other types
	"strings"  // strings is used for boolean flag parsing
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and endpoints, ints for counts,
// bools for feature flags.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	MinioEndpoint   string // object storage endpoint (host:port)
	MinioAccessKey  string // object storage access key
	MinioSecretKey  string // object storage secret key
	MinioBucket     string // bucket that receives rendered arrival cards
	MinioUseSSL     bool   // whether to talk to object storage over TLS
	PublicBaseURL   string // base URL under which uploaded objects are publicly reachable
	UpdateInfoURL   string // URL encoded into the page-1 QR code telling travellers how to amend a submission
	CardMaxAttempts int    // bounded retry count for arrival-card-number allocation
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),                // environment (dev/test/prod)
		Port:            must("APP_PORT"),               // port to bind the HTTP server
		DBUser:          must("DB_USER"),                // database user
		DBPass:          os.Getenv("DB_PASS"),           // database password (empty allowed)
		DBHost:          must("DB_HOST"),                // database host
		DBPort:          must("DB_PORT"),                // database port
		DBName:          must("DB_NAME"),                // database name
		MinioEndpoint:   must("MINIO_ENDPOINT"),         // object storage endpoint
		MinioAccessKey:  must("MINIO_ACCESS_KEY"),       // object storage access key
		MinioSecretKey:  must("MINIO_SECRET_KEY"),       // object storage secret key
		MinioBucket:     must("MINIO_BUCKET"),           // target bucket for rendered PDFs
		MinioUseSSL:     boolean("MINIO_USE_SSL"),       // TLS toggle (default off)
		PublicBaseURL:   must("PUBLIC_BASE_URL"),        // public prefix for uploaded objects
		UpdateInfoURL:   must("UPDATE_INFO_URL"),        // QR payload for update instructions
		CardMaxAttempts: intOr("CARD_MAX_ATTEMPTS", 10), // allocation retry bound
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// boolean reads an optional flag variable.  "true" and "1" (any case)
// enable the flag; everything else, including absence, disables it.
func boolean(key string) bool {
	v := os.Getenv(key)
	return strings.EqualFold(v, "true") || v == "1"
}

// intOr reads an optional integer variable, falling back to def when the
// variable is unset.  An unparsable value is a fatal configuration error.
func intOr(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
