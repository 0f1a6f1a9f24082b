package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "VISITREPORT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "VISITREPORT_APP_ENV"
	EnvPort     = "VISITREPORT_APP_PORT"
	EnvLogLevel = "VISITREPORT_LOG_LEVEL"

	EnvDBDSN  = "VISITREPORT_DB_DSN"
	EnvDBHost = "VISITREPORT_DB_HOST"
	EnvDBUser = "VISITREPORT_DB_USER"
	EnvDBName = "VISITREPORT_DB_NAME"

	EnvRedisURL = "VISITREPORT_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
