package config

import "os"

// Environment variables read by the resolver.
const (
	EnvURL                 = "URL"
	EnvAlgoliaAppID        = "ALGOLIA_APP_ID"
	EnvAlgoliaSearchAPIKey = "ALGOLIA_SEARCH_API_KEY"
	EnvAlgoliaSiteID       = "ALGOLIA_SITE_ID"
)

const (
	defaultTitle                 = "Mytchall Bransgrove"
	defaultURL                   = "http://localhost:8080"
	defaultImage                 = "/assets/images/sidebar_profile1.jpeg"
	defaultImageAlt              = "Mytchall Bransgrove"
	defaultAuthor                = "Mytchall Bransgrove"
	defaultDescription           = "Full-stack developer writing about game, blockchain and web development."
	defaultOpenGraphDefaultImage = "/assets/images/opengraph.jpg"
	defaultSocialGitHub          = "mytchallb"
	defaultSocialLinkedIn        = "mytchall-bransgrove-8352a3118"
	defaultBranch                = "main"
)

// Environment looks up a variable by name and reports whether it is set.
type Environment func(key string) (string, bool)

// OSEnvironment reads the live process environment.
func OSEnvironment() Environment {
	return os.LookupEnv
}

// MapEnvironment returns an Environment backed by a copy of vars.
func MapEnvironment(vars map[string]string) Environment {
	snapshot := make(map[string]string, len(vars))
	for k, v := range vars {
		snapshot[k] = v
	}
	return func(key string) (string, bool) {
		v, ok := snapshot[key]
		return v, ok
	}
}

// Resolve merges the compiled-in defaults with env. It never fails and has no
// side effects, so identical environments always produce equal settings.
func Resolve(env Environment) SiteSettings {
	s := defaultSiteSettings()
	applyEnvSettings(&s, env)
	return s
}

// DefaultSiteSettings returns the compiled-in settings without consulting
// any environment.
func DefaultSiteSettings() SiteSettings {
	return defaultSiteSettings()
}

func defaultSiteSettings() SiteSettings {
	return SiteSettings{
		title:                 defaultTitle,
		url:                   defaultURL,
		image:                 defaultImage,
		imageAlt:              defaultImageAlt,
		author:                defaultAuthor,
		description:           defaultDescription,
		openGraphDefaultImage: defaultOpenGraphDefaultImage,
		socialGitHub:          Some(defaultSocialGitHub),
		socialLinkedIn:        Some(defaultSocialLinkedIn),
		search: SearchSettings{
			enabled: true,
			branch:  defaultBranch,
		},
	}
}

// applyEnvSettings copies environment values over s. Values are used verbatim.
// An empty URL keeps whatever s already holds. HEAD is not read; the branch
// stays on its configured value.
func applyEnvSettings(s *SiteSettings, env Environment) {
	if env == nil {
		return
	}

	if url, ok := env(EnvURL); ok && url != "" {
		s.url = url
	}
	if v, ok := env(EnvAlgoliaAppID); ok {
		s.search.appID = Some(v)
	}
	if v, ok := env(EnvAlgoliaSearchAPIKey); ok {
		s.search.searchAPIKey = Some(v)
	}
	if v, ok := env(EnvAlgoliaSiteID); ok {
		s.search.siteID = Some(v)
	}
}
