package config

const EnvPrefix = "SWINGBAY"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "SWINGBAY_APP_ENV"
	EnvPort     = "SWINGBAY_APP_PORT"
	EnvDBDSN    = "SWINGBAY_DB_DSN"
	EnvDBHost   = "SWINGBAY_DB_HOST"
	EnvDBUser   = "SWINGBAY_DB_USER"
	EnvDBName   = "SWINGBAY_DB_NAME"
	EnvRedisURL = "SWINGBAY_REDIS_URL"

	EnvJWTSecret = "SWINGBAY_JWT_SECRET"
	EnvJWTIssuer = "SWINGBAY_JWT_ISSUER"

	EnvAdminUsername     = "SWINGBAY_ADMIN_USERNAME"
	EnvAdminPasswordHash = "SWINGBAY_ADMIN_PASSWORD_HASH"
)

// componentDBEnvVars are the variables required when no full DSN is provided.
var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
