package mold

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/mold.Version=...".
var Version = "dev"
