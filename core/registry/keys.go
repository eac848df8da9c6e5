package registry

// Registries stored in GlobalRegistry.
const (
	KeyRegistryCmd    = "registry:cmd"
	KeyRegistryCron   = "registry:cron"
	KeyRegistryAPI    = "registry:api"
	KeyRegistryRoutes = "registry:routes"

	// KeyRegistryResources holds the table resources mounted under /api.
	KeyRegistryResources = "registry:resources"
)
