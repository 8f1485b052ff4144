//go:build windows
// +build windows

package changewallpaperlib

import (
	"errors"
	"fmt"
	"log"
	"os"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

type monitorInfoEx struct {
	size    uint32
	monitor rect
	work    rect
	flags   uint32
	device  [32]uint16
}

const monitorInfoPrimary = 1

// DesktopWallpaper does not extend IDispatch so this needs to be done manually
type IDesktopWallpaperVtbl struct {
	QueryInterface            uintptr
	AddRef                    uintptr
	Release                   uintptr
	SetWallpaper              uintptr
	GetWallpaper              uintptr
	GetMonitorDevicePathAt    uintptr
	GetMonitorDevicePathCount uintptr
	GetMonitorRECT            uintptr
	SetBackgroundColor        uintptr
	GetBackgroundColor        uintptr
	SetPosition               uintptr
	GetPosition               uintptr
	SetSlideshow              uintptr
	GetSlideshow              uintptr
	SetSlideshowOptions       uintptr
	GetSlideshowOptions       uintptr
	AdvanceSlideshow          uintptr
	GetStatus                 uintptr
	Enable                    uintptr
}

// Pulled from headers
const CLSID = "{C2CF3110-460E-4fc1-B9D0-8A1C0C9CC4BD}"
const IID = "{B92B56A9-8B55-4E14-9A89-0199BBB6F93B}"

const (
	spiSetDeskWallpaper  = 0x14
	spifUpdateIniFile    = 0x01
	spifSendWinIniChange = 0x02
)

var (
	moduser32   = windows.NewLazySystemDLL("user32.dll")
	modshcore   = windows.NewLazySystemDLL("shcore.dll")
	modole32    = windows.NewLazySystemDLL("ole32.dll")
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procEnumDisplayMonitors    = moduser32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW        = moduser32.NewProc("GetMonitorInfoW")
	procSystemParametersInfoW  = moduser32.NewProc("SystemParametersInfoW")
	procShowWindow             = moduser32.NewProc("ShowWindow")
	procSetProcessDpiAwareness = modshcore.NewProc("SetProcessDpiAwareness")
	procCoTaskMemFree          = modole32.NewProc("CoTaskMemFree")
	procAttachConsole          = modkernel32.NewProc("AttachConsole")
	procGetConsoleWindow       = modkernel32.NewProc("GetConsoleWindow")
)

func NewPlatform(c *Config) *Platform {
	return &Platform{
		Enumerator: windowsMonitors{},
		OpenNative: openDesktopWallpaper,
		Legacy:     &windowsLegacy{style: c.WallpaperStyle, tile: c.TileWallpaper},
	}
}

type windowsMonitors struct{}

// Monitors uses EnumDisplayMonitors, which already reports coordinates
// relative to the primary monitor.
func (windowsMonitors) Monitors() ([]MonitorRect, error) {
	// Per-monitor aware so rectangles are physical pixels. Fails harmlessly if
	// the manifest or an earlier call already set it.
	if procSetProcessDpiAwareness.Find() == nil {
		_, _, _ = procSetProcessDpiAwareness.Call(2)
	}

	var monitors []MonitorRect
	var enumErr error

	cb := windows.NewCallback(func(hMonitor, hdc, lprc, data uintptr) uintptr {
		mi := monitorInfoEx{}
		mi.size = uint32(unsafe.Sizeof(mi))

		ret, _, err := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
		if ret == 0 {
			enumErr = fmt.Errorf("GetMonitorInfoW failed: %v", err)
			return 0
		}

		monitors = append(monitors, MonitorRect{
			X:       int(mi.monitor.left),
			Y:       int(mi.monitor.top),
			Width:   int(mi.monitor.right - mi.monitor.left),
			Height:  int(mi.monitor.bottom - mi.monitor.top),
			Primary: mi.flags&monitorInfoPrimary != 0,
		})
		return 1
	})

	ret, _, err := procEnumDisplayMonitors.Call(0, 0, cb, 0)
	if enumErr != nil {
		return nil, enumErr
	}
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %v", err)
	}

	return monitors, nil
}

type desktopWallpaper struct {
	unknown *ole.IUnknown
	vtable  *IDesktopWallpaperVtbl
}

func openDesktopWallpaper() (NativeWallpaperSetter, error) {
	err := ole.CoInitialize(0)
	if err != nil {
		// S_FALSE, already initialized on this thread, still needs balancing
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != 1 {
			return nil, err
		}
	}

	unknown, err := ole.CreateInstance(
		ole.NewGUID(CLSID),
		ole.NewGUID(IID))
	if err != nil {
		ole.CoUninitialize()
		return nil, err
	}

	return &desktopWallpaper{
		unknown: unknown,
		vtable:  (*IDesktopWallpaperVtbl)(unsafe.Pointer(unknown.RawVTable)),
	}, nil
}

func (d *desktopWallpaper) MonitorCount() (uint32, error) {
	var count uint32

	hr, _, err := syscall.Syscall(
		d.vtable.GetMonitorDevicePathCount,
		2,
		uintptr(unsafe.Pointer(d.unknown)),
		uintptr(unsafe.Pointer(&count)),
		0)
	if hr != 0 {
		return 0, fmt.Errorf(
			"Unexpected value from GetMonitorDevicePathCount %d %v", hr, err)
	}
	return count, nil
}

func (d *desktopWallpaper) DeviceIDAt(index uint32) (string, error) {
	var pathOut *uint16

	hr, _, err := syscall.Syscall(
		d.vtable.GetMonitorDevicePathAt,
		3,
		uintptr(unsafe.Pointer(d.unknown)),
		uintptr(index),
		uintptr(unsafe.Pointer(&pathOut)))
	if hr != 0 {
		return "", fmt.Errorf(
			"Unexpected value from GetMonitorDevicePathAt %d %v", hr, err)
	}
	if pathOut == nil {
		return "", nil
	}

	// Copy out and immediately free memory allocated outside of Go's control
	path := windows.UTF16PtrToString(pathOut)
	_, _, _ = syscall.Syscall(
		procCoTaskMemFree.Addr(),
		1,
		uintptr(unsafe.Pointer(pathOut)),
		0,
		0)

	return path, nil
}

func (d *desktopWallpaper) SetWallpaper(deviceID, path string) error {
	id, err := windows.UTF16PtrFromString(deviceID)
	if err != nil {
		return err
	}
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	hr, _, _ := syscall.Syscall(
		d.vtable.SetWallpaper,
		3,
		uintptr(unsafe.Pointer(d.unknown)),
		uintptr(unsafe.Pointer(id)),
		uintptr(unsafe.Pointer(p)))
	if hr != 0 {
		return fmt.Errorf("Unexpected value from SetWallpaper %d", hr)
	}
	return nil
}

func (d *desktopWallpaper) Close() error {
	d.unknown.Release()
	ole.CoUninitialize()
	return nil
}

type windowsLegacy struct {
	style string
	tile  string
}

// SystemParametersInfo copies the image into the user's profile, so the
// caller is free to delete path afterwards.
func (w *windowsLegacy) SetWallpaper(path string) error {
	if err := w.setRegistryKeys(); err != nil {
		return err
	}

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	ret, _, err := procSystemParametersInfoW.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(p)),
		spifUpdateIniFile|spifSendWinIniChange)
	if ret == 0 {
		return fmt.Errorf(
			"SystemParametersInfo failed to set [%s], make sure the image is accessible and valid: %v",
			path, err)
	}
	return nil
}

// The style has to be set before the wallpaper so the canvas is shown at its
// exact pixel mapping.
func (w *windowsLegacy) setRegistryKeys() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	if err = k.SetStringValue("WallpaperStyle", w.style); err != nil {
		return err
	}
	if err = k.SetStringValue("TileWallpaper", w.tile); err != nil {
		return err
	}

	log.Printf("Set WallpaperStyle=%s TileWallpaper=%s\n", w.style, w.tile)
	return nil
}

const ATTACH_PARENT_PROCESS = uintptr(^uint32(0)) // (DWORD)-1

// Attempts to attach to the parent console if one exists so we can get stdout
// Note that it's impossible to properly redirect stdin
// See https://stackoverflow.com/questions/23743217/
func AttachParentConsole() {
	r, _, _ :=
		syscall.Syscall(procAttachConsole.Addr(), 1, ATTACH_PARENT_PROCESS, 0, 0)

	if r == 0 {
		return
	}

	hout, err := syscall.GetStdHandle(syscall.STD_OUTPUT_HANDLE)
	if err != nil {
		return
	}
	herr, err := syscall.GetStdHandle(syscall.STD_ERROR_HANDLE)
	if err != nil {
		return
	}

	os.Stdout = os.NewFile(uintptr(hout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(herr), "/dev/stderr")
}

const swHide = 0

// HideConsole hides the console window for silent runs started from a
// shortcut or scheduler.
func HideConsole() {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return
	}
	_, _, _ = procShowWindow.Call(hwnd, swHide)
}
