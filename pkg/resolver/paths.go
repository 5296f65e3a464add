// Package resolver locates the executables, libraries, and test inputs
// the harness drives, following the build tree's naming conventions.
package resolver

import (
	"path/filepath"
	"strings"
)

// Variant selects which build tree to resolve binaries from.
type Variant string

const (
	Debug   Variant = "debug"
	Release Variant = "release"
)

// Tool identifies which binary of the pair to resolve.
type Tool string

const (
	Encoder Tool = "encoder"
	Decoder Tool = "decoder"
)

// Paths resolves locations inside one checkout of the codec project.
type Paths struct {
	// Root is the project checkout root.
	Root string
	// Variant picks build/ vs build-release/.
	Variant Variant
	// OS is the GOOS of the execution target, which may differ from the
	// harness's own when running remotely.
	OS string
}

func (p Paths) buildDir() string {
	if p.Variant == Release {
		return "build-release"
	}
	return "build"
}

// TestExecutable returns the path of the codec test binary built under
// vk_video_encoder/test or vk_video_decoder/test. Windows builds nest the
// binary one level deeper under the configuration name.
func (p Paths) TestExecutable(tool Tool) string {
	component := "vk_video_encoder"
	name := "vulkan-video-enc-test"
	if tool == Decoder {
		component = "vk_video_decoder"
		name = "vulkan-video-dec-test"
	}
	if p.OS == "windows" {
		conf := "Debug"
		if p.Variant == Release {
			conf = "Release"
		}
		return p.join(p.buildDir(), component, "test", conf, name+".exe")
	}
	return p.join(p.buildDir(), component, "test", name)
}

// DemoExecutable returns the path of the sample application built under
// the demos directory. The suite driver exercises these rather than the
// unit-test binaries.
func (p Paths) DemoExecutable(tool Tool) string {
	component := "vk_video_encoder"
	name := "vk-video-enc-test"
	if tool == Decoder {
		component = "vk_video_decoder"
		name = "vk-video-dec-test"
	}
	if p.OS == "windows" {
		name += ".exe"
	}
	return p.join(p.buildDir(), component, "demos", name)
}

// LibraryDir returns the directory holding the project's shared libraries.
func (p Paths) LibraryDir() string {
	return p.join(p.buildDir(), "lib")
}

// LibraryEnv returns the library-search environment variable for the
// target OS with the library dir prepended to the existing value.
func (p Paths) LibraryEnv(existing string) (name, value string) {
	dir := p.LibraryDir()
	if p.OS == "windows" {
		name = "PATH"
		value = dir
		if existing != "" {
			value += ";" + existing
		}
		return name, value
	}
	name = "LD_LIBRARY_PATH"
	value = dir
	if existing != "" {
		value += ":" + existing
	}
	return name, value
}

func (p Paths) join(elem ...string) string {
	joined := filepath.ToSlash(filepath.Join(append([]string{p.Root}, elem...)...))
	if p.OS == "windows" {
		return strings.ReplaceAll(joined, "/", "\\")
	}
	return joined
}
