package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/vkvideobench/pkg/codec"
)

// ErrUnknownCodec marks a profile whose codec field is missing or not a
// recognized alias.
var ErrUnknownCodec = errors.New("unknown codec")

// Schema and documentation artifacts share the profile directory but are
// not runnable profiles.
var reservedProfileNames = map[string]bool{
	"encoder_config.schema.json": true,
	"encoder_config.md.json":     true,
}

// Profile is a parsed encoder configuration profile.
type Profile struct {
	// Name identifies the profile: the file stem for generic profiles,
	// vendor/stem for vendor profiles.
	Name string
	// Path is the profile file, passed to the encoder verbatim.
	Path string
	// Codec is the normalized codec the profile targets.
	Codec codec.Codec
	// QualityPreset is nil when the profile does not pin one.
	QualityPreset *int
	// Extra carries fields this system does not interpret. The encoder
	// owns their schema.
	Extra map[string]any
}

// LoadProfile parses a profile JSON file. The codec field is required and
// must normalize to a known codec; everything else passes through.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", filepath.Base(path), err)
	}

	p := Profile{Path: path, Extra: map[string]any{}}

	codecName, _ := raw["codec"].(string)
	p.Codec = codec.Normalize(codecName)
	if p.Codec == codec.Unknown {
		return Profile{}, fmt.Errorf("profile %s: %w: %q", filepath.Base(path), ErrUnknownCodec, codecName)
	}

	if v, ok := raw["qualityPreset"]; ok {
		f, ok := v.(float64)
		if !ok || f != float64(int(f)) {
			return Profile{}, fmt.Errorf("profile %s: qualityPreset must be an integer", filepath.Base(path))
		}
		preset := int(f)
		p.QualityPreset = &preset
	}

	for k, v := range raw {
		if k == "codec" || k == "qualityPreset" {
			continue
		}
		p.Extra[k] = v
	}
	return p, nil
}

// ProfileFile names a discovered profile before it is parsed.
type ProfileFile struct {
	Name string
	Path string
}

// DiscoverProfileFiles scans a profile directory: JSON files at the top
// level are generic profiles, each immediate subdirectory is one vendor's
// profile set. Reserved schema/documentation filenames are excluded.
// Results are sorted by name for stable run order.
func DiscoverProfileFiles(dir string) ([]ProfileFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ProfileFile
	for _, e := range entries {
		if e.IsDir() {
			vendor := e.Name()
			sub, err := os.ReadDir(filepath.Join(dir, vendor))
			if err != nil {
				return nil, err
			}
			for _, s := range sub {
				if s.IsDir() || !isProfileFile(s.Name()) {
					continue
				}
				files = append(files, ProfileFile{
					Name: vendor + "/" + stem(s.Name()),
					Path: filepath.Join(dir, vendor, s.Name()),
				})
			}
			continue
		}
		if !isProfileFile(e.Name()) {
			continue
		}
		files = append(files, ProfileFile{
			Name: stem(e.Name()),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// DiscoverProfiles discovers and parses every profile in a directory. A
// single unparsable profile fails the whole discovery; use
// DiscoverProfileFiles with per-file LoadProfile for tolerant iteration.
func DiscoverProfiles(dir string) ([]Profile, error) {
	files, err := DiscoverProfileFiles(dir)
	if err != nil {
		return nil, err
	}
	profiles := make([]Profile, 0, len(files))
	for _, f := range files {
		p, err := LoadProfile(f.Path)
		if err != nil {
			return nil, err
		}
		p.Name = f.Name
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func isProfileFile(name string) bool {
	if reservedProfileNames[strings.ToLower(name)] {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".json")
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
