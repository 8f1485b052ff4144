package changewallpaperlib

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/awused/awconf"
)

const configName = "backgroundchanger"

type Config struct {
	// Where the combined canvas and the verification copy are written
	TempDirectory string
	// Persistent copies of combined wallpapers for desktops that keep reading
	// the file after it has been set
	OutputDir string
	LogFile   string
	Silent    bool
	// Control Panel\Desktop values used by the combined wallpaper on Windows.
	// 22 spans one image across every monitor at its native pixel size.
	WallpaperStyle string
	TileWallpaper  string
	// Only needed for the random command
	DatabaseDir         string
	OriginalsDirectory  string
	ImageFileExtensions []string
}

var conf *Config

func GetConfig() (*Config, error) {
	if conf != nil {
		return conf, nil
	}

	return nil, fmt.Errorf("Init never called")
}

// Init loads the config from path when it is set, otherwise from awconf's
// usual locations. Having no config at all is fine.
func Init(path string) (*Config, error) {
	c := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			return nil, fmt.Errorf("Error reading config [%s]: %w", path, err)
		}
	} else if err := awconf.LoadConfig(configName, c); err != nil {
		log.Printf("No config loaded, using defaults: %v\n", err)
		c = &Config{}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	conf = c
	return c, nil
}

func (c *Config) validate() error {
	if c.TempDirectory == "" {
		c.TempDirectory = os.TempDir()
	}

	fi, err := os.Stat(c.TempDirectory)
	if err != nil {
		return fmt.Errorf(
			"Error calling os.Stat on TempDirectory [%s]: %s", c.TempDirectory, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("TempDirectory [%s] is not a directory", c.TempDirectory)
	}

	if c.OutputDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.Getenv("HOME")
		}
		c.OutputDir = filepath.Join(home, ".wallpapers")
	}

	fi, err = os.Stat(c.OutputDir)
	if err == nil && !fi.IsDir() {
		return fmt.Errorf("OutputDir [%s] is a regular file", c.OutputDir)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf(
			"Error calling os.Stat on OutputDir [%s]: %s", c.OutputDir, err)
	}

	if c.WallpaperStyle == "" {
		c.WallpaperStyle = "22"
	}
	if c.TileWallpaper == "" {
		c.TileWallpaper = "0"
	}

	if len(c.ImageFileExtensions) == 0 {
		c.ImageFileExtensions = append([]string(nil), SupportedExtensions...)
	}
	for i, e := range c.ImageFileExtensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !hasSupportedExtension("x" + e) {
			return fmt.Errorf("ImageFileExtensions contains unsupported extension [%s]", e)
		}
		c.ImageFileExtensions[i] = e
	}

	if c.OriginalsDirectory != "" {
		fi, err = os.Stat(c.OriginalsDirectory)
		if err != nil {
			return fmt.Errorf(
				"Error calling os.Stat on OriginalsDirectory [%s]: %s", c.OriginalsDirectory, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("OriginalsDirectory [%s] is not a directory", c.OriginalsDirectory)
		}
	}

	if c.DatabaseDir != "" {
		fi, err = os.Stat(c.DatabaseDir)
		if err == nil && !fi.IsDir() {
			return fmt.Errorf("DatabaseDir [%s] is not a directory", c.DatabaseDir)
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf(
				"Error calling os.Stat on DatabaseDir [%s]: %s", c.DatabaseDir, err)
		}
	}

	return nil
}

// GetAllOriginals returns every image under OriginalsDirectory, relative to it.
func GetAllOriginals() ([]string, error) {
	c, err := GetConfig()
	if err != nil {
		return nil, err
	}
	if c.OriginalsDirectory == "" {
		return nil, fmt.Errorf("Config missing OriginalsDirectory")
	}

	var originals []string
	err = filepath.Walk(c.OriginalsDirectory, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !f.Mode().IsRegular() {
			return nil
		}

		pathLower := strings.ToLower(path)
		for _, t := range c.ImageFileExtensions {
			if strings.HasSuffix(pathLower, t) {
				rel, err := filepath.Rel(c.OriginalsDirectory, path)
				if err != nil {
					return err
				}
				originals = append(originals, filepath.ToSlash(rel))
				break
			}
		}
		return nil
	})
	return originals, err
}

// GetFullInputPath resolves a path returned by GetAllOriginals.
func GetFullInputPath(relPath string) (string, error) {
	c, err := GetConfig()
	if err != nil {
		return "", err
	}
	return filepath.Abs(filepath.Join(c.OriginalsDirectory, filepath.FromSlash(relPath)))
}
