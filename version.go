package visage

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/mengchil/visage.Version=...".
var Version = "0.1.0"
