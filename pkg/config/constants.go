package config

const (
	EnvPrefix = "SEOFORGE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "SEOFORGE_APP_ENV"
	EnvPort     = "SEOFORGE_APP_PORT"
	EnvDBDSN    = "SEOFORGE_DB_DSN"
	EnvDBHost   = "SEOFORGE_DB_HOST"
	EnvDBUser   = "SEOFORGE_DB_USER"
	EnvDBName   = "SEOFORGE_DB_NAME"
	EnvRedisURL = "SEOFORGE_REDIS_URL"

	EnvShopifyAppSecret = "SEOFORGE_SHOPIFY_APP_SECRET"
	EnvOpenAIAPIKey     = "SEOFORGE_OPENAI_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
