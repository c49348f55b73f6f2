// Package version holds build metadata, set with -ldflags "-X".
// Package version 保存构建元数据，通过 -ldflags "-X" 设置。
package version

// Version is the release of the notify helper.
var Version = "dev"
