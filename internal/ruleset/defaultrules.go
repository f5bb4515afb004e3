package ruleset

// DefaultRules returns the built-in TEMP/CACHE/BUILD_ARTIFACT pattern
// rules (spec §6.3). cmd/diskscope's --rules flag loads additional rules
// from a JSON file and appends them to these before calling Compile.
func DefaultRules() []PatternRule {
	return append(append(tempRules(), cacheRules()...), buildArtifactRules()...)
}

func tempRules() []PatternRule {
	return []PatternRule{
		{Name: "tmp-dir", Pattern: "**/tmp/**", Category: Temp, ApplyTo: ApplyBoth},
		{Name: "var-tmp-dir", Pattern: "**/var/tmp/**", Category: Temp, ApplyTo: ApplyBoth},
		{Name: "temp-dir", Pattern: "**/temp/**", Category: Temp, ApplyTo: ApplyBoth},
		{Name: "trash-dir", Pattern: "**/{.trash,.local/share/trash}/**", Category: Temp, ApplyTo: ApplyBoth},
		{Name: "recycle-bin", Pattern: "**/$recycle.bin/**", Category: Temp, ApplyTo: ApplyDir},
		{Name: "ds-store", Pattern: "**/.ds_store", Category: Temp, ApplyTo: ApplyFile},
		{Name: "thumbs-db", Pattern: "**/thumbs.db", Category: Temp, ApplyTo: ApplyFile},
		{Name: "log-file", Pattern: "**/*.log", Category: Temp, ApplyTo: ApplyFile},
		{Name: "log-numbered", Pattern: "**/*.log.*", Category: Temp, ApplyTo: ApplyFile},
		{Name: "tilde-backup", Pattern: "**/*~", Category: Temp, ApplyTo: ApplyFile},
		{Name: "swap-file", Pattern: "**/*.swp", Category: Temp, ApplyTo: ApplyFile},
		{Name: "swap-file-alt", Pattern: "**/*.swo", Category: Temp, ApplyTo: ApplyFile},
		{Name: "bak-file", Pattern: "**/*.bak", Category: Temp, ApplyTo: ApplyFile},
		{Name: "old-file", Pattern: "**/*.old", Category: Temp, ApplyTo: ApplyFile},
		{Name: "orig-file", Pattern: "**/*.orig", Category: Temp, ApplyTo: ApplyFile},
		{Name: "tmp-suffix", Pattern: "**/*.tmp", Category: Temp, ApplyTo: ApplyBoth},
		{Name: "crash-reports", Pattern: "**/library/logs/diagnosticreports/**", Category: Temp, ApplyTo: ApplyBoth},
		{Name: "core-dump", Pattern: "**/core.*", Category: Temp, ApplyTo: ApplyFile},
		{Name: "spotlight-index", Pattern: "**/.spotlight-v100/**", Category: Temp, ApplyTo: ApplyDir},
		{Name: "fsevents", Pattern: "**/.fseventsd/**", Category: Temp, ApplyTo: ApplyDir},
	}
}

func cacheRules() []PatternRule {
	return []PatternRule{
		{Name: "generic-cache-dir", Pattern: "**/.cache/**", Category: Cache, ApplyTo: ApplyDir},
		{Name: "npm-cache", Pattern: "**/.npm/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "yarn-cache", Pattern: "**/.yarn/cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "pnpm-store", Pattern: "**/.pnpm-store/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "pip-cache", Pattern: "**/.cache/pip/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "pipenv-cache", Pattern: "**/.cache/pipenv/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "poetry-cache", Pattern: "**/pypoetry/cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "gradle-cache", Pattern: "**/.gradle/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "maven-repo", Pattern: "**/.m2/repository/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "go-build-cache", Pattern: "**/go-build/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "go-mod-cache", Pattern: "**/pkg/mod/cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "cargo-registry", Pattern: "**/.cargo/registry/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "cocoapods-cache", Pattern: "**/library/caches/cocoapods/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "carthage-cache", Pattern: "**/carthage/checkouts/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "docker-buildkit-cache", Pattern: "**/.docker/buildkit/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "bazel-cache", Pattern: "**/.cache/bazel/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "webpack-cache", Pattern: "**/.cache/webpack/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "nuget-cache", Pattern: "**/.nuget/packages/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "composer-cache", Pattern: "**/.composer/cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "xcode-deriveddata", Pattern: "**/library/developer/xcode/deriveddata/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "android-build-cache", Pattern: "**/.android/cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "browser-cache", Pattern: "**/{cache,cache2,gpucache}/**", Category: Cache, ApplyTo: ApplyDir},
		{Name: "jest-cache", Pattern: "**/.jest-cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "pytest-cache", Pattern: "**/.pytest_cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "mypy-cache", Pattern: "**/.mypy_cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "ruff-cache", Pattern: "**/.ruff_cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "pycache-dir", Pattern: "**/__pycache__/**", Category: Cache, ApplyTo: ApplyBoth},
	}
}

func buildArtifactRules() []PatternRule {
	return []PatternRule{
		{Name: "node-modules", Pattern: "**/node_modules/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "python-venv", Pattern: "**/{.venv,venv}/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "rust-target", Pattern: "**/target/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "generic-build-dir", Pattern: "**/build/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "dist-dir", Pattern: "**/dist/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "out-dir", Pattern: "**/out/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "cmake-build-dir", Pattern: "**/cmake-build-*/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "dotnet-obj-bin", Pattern: "**/{obj,bin}/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "android-build", Pattern: "**/app/build/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "gradle-build-dir", Pattern: "**/.gradle/buildoutputcleanup/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "next-build", Pattern: "**/.next/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "nuxt-build", Pattern: "**/.nuxt/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "svelte-build", Pattern: "**/.svelte-kit/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "parcel-cache-build", Pattern: "**/.parcel-cache/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "turbo-build", Pattern: "**/.turbo/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "vendor-bundle", Pattern: "**/vendor/bundle/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "bower-components", Pattern: "**/bower_components/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "object-file", Pattern: "**/*.o", Category: BuildArtifact, ApplyTo: ApplyFile},
		{Name: "class-file", Pattern: "**/*.class", Category: BuildArtifact, ApplyTo: ApplyFile},
		{Name: "pyc-file", Pattern: "**/*.pyc", Category: BuildArtifact, ApplyTo: ApplyFile},
		{Name: "compiled-wasm", Pattern: "**/*.wasm", Category: BuildArtifact, ApplyTo: ApplyFile},
		{Name: "jar-artifact", Pattern: "**/*.jar", Category: BuildArtifact, ApplyTo: ApplyFile},
		{Name: "dsym-bundle", Pattern: "**/*.dsym/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "xcarchive", Pattern: "**/*.xcarchive/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
		{Name: "gradle-wrapper-dists", Pattern: "**/.gradle/wrapper/dists/**", Category: BuildArtifact, ApplyTo: ApplyBoth, StopRecursion: true},
	}
}
