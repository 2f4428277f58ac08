//go:build linux

package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"

	"github.com/tinyrange/glview/internal/gl"
)

const (
	glxRGBA         = 4
	glxDoubleBuffer = 5
	glxRedSize      = 8
	glxGreenSize    = 9
	glxBlueSize     = 10
	glxDepthSize    = 12
	glxNone         = 0

	glxDrawableType = 0x8010
	glxRenderType   = 0x8011
	glxXRenderable  = 0x8012
	glxWindowBit    = 0x1
	glxRGBABit      = 0x1

	glxContextMajorVersion = 0x2091
	glxContextMinorVersion = 0x2092
	glxContextProfileMask  = 0x9126
	glxContextCoreProfile  = 0x1

	inputOutput = 1

	exposureMask        = 1 << 15
	structureNotifyMask = 1 << 17
	keyPressMask        = 1 << 0
	keyReleaseMask      = 1 << 1
	buttonPressMask     = 1 << 2
	buttonReleaseMask   = 1 << 3
	pointerMotionMask   = 1 << 6

	keyPress        = 2
	keyRelease      = 3
	buttonPress     = 4
	buttonRelease   = 5
	motionNotify    = 6
	destroyNotify   = 17
	configureNotify = 22
	clientMessage   = 33

	shiftMask   = 1 << 0
	controlMask = 1 << 2
	mod1Mask    = 1 << 3
)

type XVisualInfo struct {
	Visual       uintptr
	VisualID     uint
	Screen       int32
	Depth        int32
	Class        int32
	RedMask      uint64
	GreenMask    uint64
	BlueMask     uint64
	ColormapSize int32
	BitsPerRGB   int32
	MapEntries   int32
	pad          int32
}

type xclientMessage struct {
	Type        int32
	Serial      uint64
	SendEvent   int32
	Display     uintptr
	Window      uintptr
	MessageType uintptr
	Format      int32
	Data        [5]uint64
}

// xinputEvent covers XKeyEvent, XButtonEvent and XMotionEvent, which share
// this layout. Detail is the keycode or button; motion events keep is_hint
// in its low byte.
type xinputEvent struct {
	Type       int32
	Serial     uint64
	SendEvent  int32
	Display    uintptr
	Window     uintptr
	Root       uintptr
	Subwindow  uintptr
	Time       uint64
	X          int32
	Y          int32
	XRoot      int32
	YRoot      int32
	State      uint32
	Detail     uint32
	SameScreen int32
}

type xconfigureEvent struct {
	Type      int32
	Serial    uint64
	SendEvent int32
	Display   uintptr
	Event     uintptr
	Window    uintptr
	X         int32
	Y         int32
	Width     int32
	Height    int32
}

var (
	libsOnce sync.Once
	libsErr  error

	x11lib uintptr
	gllib  uintptr

	xInitThreads           func() int32
	xOpenDisplay           func(*byte) uintptr
	xDefaultScreen         func(uintptr) int32
	xRootWindow            func(uintptr, int32) uintptr
	xCreateColormap        func(uintptr, uintptr, uintptr, int32) uintptr
	xCreateWindow          func(uintptr, uintptr, int32, int32, uint32, uint32, uint32, int32, uint32, uintptr, uint64, unsafe.Pointer) uintptr
	xMapWindow             func(uintptr, uintptr) int32
	xStoreName             func(uintptr, uintptr, *byte) int32
	xInternAtom            func(uintptr, *byte, int32) uintptr
	xSetWMProtocols        func(uintptr, uintptr, *uintptr, int32) int32
	xSelectInput           func(uintptr, uintptr, int64)
	xPending               func(uintptr) int32
	xNextEvent             func(uintptr, unsafe.Pointer)
	xFlush                 func(uintptr) int32
	xConnectionNumber      func(uintptr) int32
	xLookupKeysym          func(unsafe.Pointer, int32) uint64
	xFree                  func(unsafe.Pointer) int32
	xDestroyWindow         func(uintptr, uintptr) int32
	xCloseDisplay          func(uintptr) int32
	xQueryPointer          func(uintptr, uintptr, *uintptr, *uintptr, *int32, *int32, *int32, *int32, *uint32) int32
	xDisplayWidth          func(uintptr, int32) int32
	xDisplayWidthMM        func(uintptr, int32) int32
	xResourceManagerString func(uintptr) *byte

	glxChooseVisual          func(uintptr, int32, *int32) *XVisualInfo
	glxChooseFBConfig        func(uintptr, int32, *int32, *int32) *uintptr
	glxGetVisualFromFBConfig func(uintptr, uintptr) *XVisualInfo
	glxCreateContext         func(uintptr, *XVisualInfo, uintptr, int32) uintptr
	glxMakeCurrent           func(uintptr, uintptr, uintptr) int32
	glxSwapBuffers           func(uintptr, uintptr)
	glxDestroyContext        func(uintptr, uintptr)
	glxGetProcAddress        func(*byte) uintptr

	// Resolved through glXGetProcAddressARB; nil when the driver lacks them.
	glxCreateContextAttribs func(uintptr, uintptr, uintptr, int32, *int32) uintptr
	glxSwapIntervalEXT      func(uintptr, uintptr, int32)
	glxSwapIntervalMESA     func(uint32) int32
)

type x11Window struct {
	display  uintptr
	window   uintptr
	ctx      uintptr
	wmDelete uintptr
	core     bool
	scale    float32

	running     atomic.Bool
	shouldClose atomic.Bool
	width       atomic.Int32
	height      atomic.Int32

	handler Handler
	state   keyState
}

// New opens an X11 window with a GLX context current on the calling thread.
// With core set the context is OpenGL 3.3 core profile, otherwise a legacy
// context that exposes the fixed-function pipeline.
func New(title string, width, height int, core bool) (Window, error) {
	runtime.LockOSThread()
	if err := ensureLibs(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		runtime.UnlockOSThread()
		return nil, errors.New("XOpenDisplay failed")
	}

	screen := xDefaultScreen(dpy)
	root := xRootWindow(dpy, screen)

	visual, fbconfig, err := chooseVisual(dpy, screen, core)
	if err != nil {
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, err
	}

	cmap := xCreateColormap(dpy, root, visual.Visual, 0)

	var swa xSetWindowAttributes
	swa.Colormap = cmap
	swa.EventMask = exposureMask | structureNotifyMask | keyPressMask | keyReleaseMask | buttonPressMask | buttonReleaseMask | pointerMotionMask

	const (
		cwColormap    = 1 << 13
		cwEventMask   = 1 << 11
		cwBorderPixel = 1 << 3
	)

	win := xCreateWindow(
		dpy, root,
		0, 0,
		uint32(width), uint32(height),
		0,
		visual.Depth,
		inputOutput,
		visual.Visual,
		cwBorderPixel|cwColormap|cwEventMask,
		unsafe.Pointer(&swa),
	)
	if win == 0 {
		xFree(unsafe.Pointer(visual))
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("XCreateWindow failed")
	}
	xSelectInput(dpy, win, swa.EventMask)

	titleBytes := append([]byte(title), 0)
	xStoreName(dpy, win, &titleBytes[0])
	xMapWindow(dpy, win)

	wmDelete := xInternAtom(dpy, cString("WM_DELETE_WINDOW"), 0)
	xSetWMProtocols(dpy, win, &wmDelete, 1)

	ctx, err := createContext(dpy, visual, fbconfig, core)
	xFree(unsafe.Pointer(visual))
	if err != nil {
		xDestroyWindow(dpy, win)
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, err
	}
	if glxMakeCurrent(dpy, win, ctx) == 0 {
		glxDestroyContext(dpy, ctx)
		xDestroyWindow(dpy, win)
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXMakeCurrent failed")
	}

	w := &x11Window{
		display:  dpy,
		window:   win,
		ctx:      ctx,
		wmDelete: wmDelete,
		core:     core,
		scale:    calculateScale(dpy, screen),
		handler:  NopHandler{},
	}
	w.running.Store(true)
	w.width.Store(int32(width))
	w.height.Store(int32(height))
	return w, nil
}

func chooseVisual(dpy uintptr, screen int32, core bool) (*XVisualInfo, uintptr, error) {
	if !core {
		attrs := []int32{glxRGBA, glxDoubleBuffer, glxDepthSize, 24, glxNone}
		visual := glxChooseVisual(dpy, screen, &attrs[0])
		if visual == nil {
			return nil, 0, errors.New("glXChooseVisual failed")
		}
		return visual, 0, nil
	}

	attrs := []int32{
		glxXRenderable, 1,
		glxDrawableType, glxWindowBit,
		glxRenderType, glxRGBABit,
		glxDoubleBuffer, 1,
		glxRedSize, 8,
		glxGreenSize, 8,
		glxBlueSize, 8,
		glxDepthSize, 24,
		glxNone,
	}
	var count int32
	configs := glxChooseFBConfig(dpy, screen, &attrs[0], &count)
	if configs == nil || count == 0 {
		return nil, 0, errors.New("glXChooseFBConfig found no framebuffer config")
	}
	fbconfig := *configs
	xFree(unsafe.Pointer(configs))

	visual := glxGetVisualFromFBConfig(dpy, fbconfig)
	if visual == nil {
		return nil, 0, errors.New("glXGetVisualFromFBConfig failed")
	}
	return visual, fbconfig, nil
}

func createContext(dpy uintptr, visual *XVisualInfo, fbconfig uintptr, core bool) (uintptr, error) {
	if !core {
		ctx := glxCreateContext(dpy, visual, 0, 1)
		if ctx == 0 {
			return 0, errors.New("glXCreateContext failed")
		}
		return ctx, nil
	}

	if glxCreateContextAttribs == nil {
		return 0, fmt.Errorf("%w: glXCreateContextAttribsARB", ErrUnsupported)
	}
	attrs := []int32{
		glxContextMajorVersion, 3,
		glxContextMinorVersion, 3,
		glxContextProfileMask, glxContextCoreProfile,
		glxNone,
	}
	ctx := glxCreateContextAttribs(dpy, fbconfig, 0, 1, &attrs[0])
	if ctx == 0 {
		return 0, errors.New("glXCreateContextAttribsARB failed for OpenGL 3.3 core")
	}
	return ctx, nil
}

func (w *x11Window) GL() (gl.OpenGL, error) {
	return gl.Load(w.core)
}

func (w *x11Window) Close() {
	if w.ctx != 0 {
		glxMakeCurrent(w.display, 0, 0)
		glxDestroyContext(w.display, w.ctx)
		w.ctx = 0
	}
	if w.window != 0 {
		xDestroyWindow(w.display, w.window)
		w.window = 0
	}
	if w.display != 0 {
		xCloseDisplay(w.display)
		w.display = 0
	}
	w.running.Store(false)
	runtime.UnlockOSThread()
}

func (w *x11Window) Poll() bool {
	if !w.running.Load() {
		return false
	}

	for xPending(w.display) > 0 {
		var ev [192]byte
		xNextEvent(w.display, unsafe.Pointer(&ev[0]))
		w.dispatch(unsafe.Pointer(&ev[0]))
	}
	return w.running.Load() && !w.shouldClose.Load()
}

func (w *x11Window) Wait(timeout time.Duration) bool {
	if !w.running.Load() {
		return false
	}

	xFlush(w.display)
	if xPending(w.display) == 0 {
		fds := []unix.PollFd{{Fd: xConnectionNumber(w.display), Events: unix.POLLIN}}
		// EINTR just means an early wakeup.
		_, _ = unix.Poll(fds, pollTimeout(timeout))
	}
	return w.Poll()
}

func (w *x11Window) dispatch(ev unsafe.Pointer) {
	etype := *(*int32)(ev)
	switch etype {
	case clientMessage:
		cm := (*xclientMessage)(ev)
		if cm.Format == 32 && cm.Data[0] == uint64(w.wmDelete) {
			w.shouldClose.Store(true)
		}
	case destroyNotify:
		w.running.Store(false)
	case configureNotify:
		ce := (*xconfigureEvent)(ev)
		w.width.Store(ce.Width)
		w.height.Store(ce.Height)
	case keyPress, keyRelease:
		ke := (*xinputEvent)(ev)
		key := translateKeysym(xLookupKeysym(ev, 0))
		down := etype == keyPress
		w.state.setKey(key, down)
		w.handler.Key(key, action(down), translateState(ke.State))
	case buttonPress, buttonRelease:
		be := (*xinputEvent)(ev)
		down := etype == buttonPress
		switch be.Detail {
		case 1, 2, 3:
			b := [...]Button{ButtonLeft, ButtonMiddle, ButtonRight}[be.Detail-1]
			w.state.setButton(b, down)
			w.handler.MouseButton(b, action(down), translateState(be.State))
		case 4, 5, 6, 7:
			// Wheel clicks arrive as press/release pairs; count the press only.
			if !down {
				return
			}
			d := wheelSteps[be.Detail-4]
			w.handler.Scroll(d[0], d[1])
		}
	case motionNotify:
		me := (*xinputEvent)(ev)
		w.handler.CursorMove(float64(me.X), float64(me.Y))
	}
}

// Buttons 4 to 7: wheel up, down, left, right.
var wheelSteps = [4][2]float64{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}

func action(down bool) Action {
	if down {
		return Press
	}
	return Release
}

func translateState(state uint32) Mod {
	var m Mod
	if state&shiftMask != 0 {
		m |= ModShift
	}
	if state&controlMask != 0 {
		m |= ModControl
	}
	if state&mod1Mask != 0 {
		m |= ModAlt
	}
	return m
}

func translateKeysym(sym uint64) Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return KeyA + Key(sym-'a')
	case sym >= 'A' && sym <= 'Z':
		return KeyA + Key(sym-'A')
	case sym >= '0' && sym <= '9':
		return Key0 + Key(sym-'0')
	}
	switch sym {
	case 0xff1b:
		return KeyEscape
	case 0xff09:
		return KeyTab
	case 0x20:
		return KeySpace
	case 0xff0d:
		return KeyEnter
	case 0xff51:
		return KeyLeft
	case 0xff52:
		return KeyUp
	case 0xff53:
		return KeyRight
	case 0xff54:
		return KeyDown
	}
	return KeyUnknown
}

func (w *x11Window) Swap() {
	if w.display != 0 && w.window != 0 {
		glxSwapBuffers(w.display, w.window)
	}
}

func (w *x11Window) MakeCurrent(current bool) error {
	var ok int32
	if current {
		ok = glxMakeCurrent(w.display, w.window, w.ctx)
	} else {
		ok = glxMakeCurrent(w.display, 0, 0)
	}
	if ok == 0 {
		return fmt.Errorf("glXMakeCurrent(current=%t) failed", current)
	}
	return nil
}

func (w *x11Window) SetSwapInterval(interval int) error {
	switch {
	case glxSwapIntervalEXT != nil:
		glxSwapIntervalEXT(w.display, w.window, int32(interval))
	case glxSwapIntervalMESA != nil:
		if glxSwapIntervalMESA(uint32(interval)) != 0 {
			return fmt.Errorf("glXSwapIntervalMESA(%d) failed", interval)
		}
	default:
		return fmt.Errorf("%w: swap interval control", ErrUnsupported)
	}
	return nil
}

func (w *x11Window) SetHandler(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	w.handler = h
}

func (w *x11Window) SetShouldClose(close bool) {
	w.shouldClose.Store(close)
}

func (w *x11Window) ShouldClose() bool {
	return w.shouldClose.Load() || !w.running.Load()
}

func (w *x11Window) BackingSize() (int, int) {
	return int(w.width.Load()), int(w.height.Load())
}

func (w *x11Window) Cursor() (float32, float32) {
	var root, child uintptr
	var rootX, rootY, winX, winY int32
	var mask uint32
	if xQueryPointer(w.display, w.window, &root, &child, &rootX, &rootY, &winX, &winY, &mask) == 0 {
		return 0, 0
	}
	return float32(winX), float32(winY)
}

func (w *x11Window) Scale() float32 {
	return w.scale
}

func (w *x11Window) KeyDown(key Key) bool {
	return w.state.key(key)
}

func (w *x11Window) ButtonDown(button Button) bool {
	return w.state.button(button)
}

type xSetWindowAttributes struct {
	BackgroundPixmap uintptr
	BackgroundPixel  uint64
	BorderPixmap     uint64
	BorderPixel      uint64
	BitGravity       int32
	WinGravity       int32
	BackingStore     int32
	BackingPlanes    uint64
	BackingPixel     uint64
	SaveUnder        int32
	EventMask        int64
	DoNotPropagate   int64
	OverrideRedirect int32
	Colormap         uintptr
	Cursor           uintptr
}

func ensureLibs() error {
	libsOnce.Do(func() {
		var err error
		x11lib, err = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			libsErr = err
			return
		}
		registerX11()
		// The render thread swaps buffers while the event thread reads the
		// connection.
		if xInitThreads() == 0 {
			libsErr = errors.New("XInitThreads failed")
			return
		}

		gllib, err = purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			libsErr = err
			return
		}
		registerGLX()
	})
	return libsErr
}

func registerX11() {
	purego.RegisterLibFunc(&xInitThreads, x11lib, "XInitThreads")
	purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
	purego.RegisterLibFunc(&xDefaultScreen, x11lib, "XDefaultScreen")
	purego.RegisterLibFunc(&xRootWindow, x11lib, "XRootWindow")
	purego.RegisterLibFunc(&xCreateColormap, x11lib, "XCreateColormap")
	purego.RegisterLibFunc(&xCreateWindow, x11lib, "XCreateWindow")
	purego.RegisterLibFunc(&xMapWindow, x11lib, "XMapWindow")
	purego.RegisterLibFunc(&xStoreName, x11lib, "XStoreName")
	purego.RegisterLibFunc(&xInternAtom, x11lib, "XInternAtom")
	purego.RegisterLibFunc(&xSetWMProtocols, x11lib, "XSetWMProtocols")
	purego.RegisterLibFunc(&xSelectInput, x11lib, "XSelectInput")
	purego.RegisterLibFunc(&xPending, x11lib, "XPending")
	purego.RegisterLibFunc(&xNextEvent, x11lib, "XNextEvent")
	purego.RegisterLibFunc(&xFlush, x11lib, "XFlush")
	purego.RegisterLibFunc(&xConnectionNumber, x11lib, "XConnectionNumber")
	purego.RegisterLibFunc(&xLookupKeysym, x11lib, "XLookupKeysym")
	purego.RegisterLibFunc(&xFree, x11lib, "XFree")
	purego.RegisterLibFunc(&xDestroyWindow, x11lib, "XDestroyWindow")
	purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
	purego.RegisterLibFunc(&xQueryPointer, x11lib, "XQueryPointer")
	purego.RegisterLibFunc(&xDisplayWidth, x11lib, "XDisplayWidth")
	purego.RegisterLibFunc(&xDisplayWidthMM, x11lib, "XDisplayWidthMM")
	// Try to register XResourceManagerString, but don't fail if it's not available
	if _, err := purego.Dlsym(x11lib, "XResourceManagerString"); err == nil {
		purego.RegisterLibFunc(&xResourceManagerString, x11lib, "XResourceManagerString")
	}
}

func registerGLX() {
	purego.RegisterLibFunc(&glxChooseVisual, gllib, "glXChooseVisual")
	purego.RegisterLibFunc(&glxChooseFBConfig, gllib, "glXChooseFBConfig")
	purego.RegisterLibFunc(&glxGetVisualFromFBConfig, gllib, "glXGetVisualFromFBConfig")
	purego.RegisterLibFunc(&glxCreateContext, gllib, "glXCreateContext")
	purego.RegisterLibFunc(&glxMakeCurrent, gllib, "glXMakeCurrent")
	purego.RegisterLibFunc(&glxSwapBuffers, gllib, "glXSwapBuffers")
	purego.RegisterLibFunc(&glxDestroyContext, gllib, "glXDestroyContext")
	purego.RegisterLibFunc(&glxGetProcAddress, gllib, "glXGetProcAddressARB")

	resolve := func(dst interface{}, name string) {
		if addr := glxGetProcAddress(cString(name)); addr != 0 {
			purego.RegisterFunc(dst, addr)
		}
	}
	resolve(&glxCreateContextAttribs, "glXCreateContextAttribsARB")
	resolve(&glxSwapIntervalEXT, "glXSwapIntervalEXT")
	resolve(&glxSwapIntervalMESA, "glXSwapIntervalMESA")
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}
