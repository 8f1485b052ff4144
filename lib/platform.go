package changewallpaperlib

// MonitorEnumerator lists attached displays in the order the OS reports them.
// That order defines monitor indices everywhere else.
type MonitorEnumerator interface {
	Monitors() ([]MonitorRect, error)
}

// NativeWallpaperSetter assigns a wallpaper to a single monitor and leaves
// every other monitor alone. Any method may fail, callers treat that as the
// capability being absent.
type NativeWallpaperSetter interface {
	MonitorCount() (uint32, error)
	DeviceIDAt(index uint32) (string, error)
	SetWallpaper(deviceID, path string) error
	Close() error
}

// LegacyWallpaperSetter paints one image across the whole virtual desktop.
// Implementations must not depend on path after returning, the caller deletes
// it.
type LegacyWallpaperSetter interface {
	SetWallpaper(path string) error
}

// Platform bundles the OS bindings for the current build target.
type Platform struct {
	Enumerator MonitorEnumerator
	// Nil when the platform has no per-monitor API at all
	OpenNative func() (NativeWallpaperSetter, error)
	Legacy     LegacyWallpaperSetter
}

// GetMonitors enumerates and rejects an empty list.
func (p *Platform) GetMonitors() ([]MonitorRect, error) {
	monitors, err := p.Enumerator.Monitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, ErrNoMonitors
	}
	return monitors, nil
}
