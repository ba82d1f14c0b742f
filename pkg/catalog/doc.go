// Package catalog loads, caches, and serves translation catalog documents.
//
// A Loader resolves a locale code to a catalog URL (honoring an optional
// per-locale fingerprint map for cache busting), fetches the document via a
// Transport, keeps a deep copy in its Store, and feeds the document to a Sink
// (typically a phrase engine). Cached catalogs are never evicted or considered
// stale: loading a locale a second time never touches the network.
//
// # Basic Usage
//
//	loader := catalog.NewLoader(engine,
//		catalog.WithBasePath("https://cdn.example.com/locales"),
//		catalog.WithFingerprints(map[string]string{"en": "a1b2c3"}),
//	)
//
//	if err := loader.Load(ctx, "en"); err != nil {
//		// transport failure; the store is untouched and a retry will re-fetch
//	}
//
// # Shipped Catalogs
//
// Catalogs bundled with the binary can be preloaded from any fs.FS, including
// an embed.FS. Preloaded locales are served from the store like previously
// fetched ones:
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	subFS, _ := fs.Sub(localesFS, "locales")
//	locales, err := loader.Preload(ctx, subFS)
//
// File convention: {locale}.json, {locale}.yaml or {locale}.yml.
//
// # Stores
//
// The default store is an in-process map. NewRedisStore provides a Redis-backed
// store for deployments where several processes should share fetched catalogs.
package catalog
