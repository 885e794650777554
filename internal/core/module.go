// Package core provides the module system foundation for walletclaw.
package core

// ModuleID uniquely identifies a module (e.g. "channel.telegram").
type ModuleID string

// ModuleInfo describes a registered module.
type ModuleInfo struct {
	// ID is the unique module identifier. Namespaced IDs use dots,
	// e.g. "provider.gemini", "tool.moneylover".
	ID ModuleID

	// New returns a fresh, unconfigured instance of the module.
	New func() Module
}

// Module is the minimal contract every module satisfies. Lifecycle
// behavior is added through the optional interfaces in lifecycle.go.
type Module interface {
	ModuleInfo() ModuleInfo
}
