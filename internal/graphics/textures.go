package graphics

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
)

// TextureSet is an append-only list of textures with an active index.
//
// Images may be queued from any goroutine; they are uploaded by Upload or
// Add on the GL thread, and only published once the upload has finished, so
// Active never returns a texture that is still being created.
type TextureSet struct {
	mu      sync.Mutex
	pending []queuedImage

	published atomic.Pointer[textureList]
}

type queuedImage struct {
	img  image.Image
	opts TextureOptions
}

type textureList struct {
	textures []Texture
	active   int
}

func (s *TextureSet) load() *textureList {
	if l := s.published.Load(); l != nil {
		return l
	}
	return &textureList{active: -1}
}

// Queue schedules img for upload on the next Upload call.
func (s *TextureSet) Queue(img image.Image, opts TextureOptions) {
	s.mu.Lock()
	s.pending = append(s.pending, queuedImage{img: img, opts: opts})
	s.mu.Unlock()
}

// Pending reports how many queued images await upload.
func (s *TextureSet) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Add uploads img through p and publishes it as the active texture.
func (s *TextureSet) Add(p Pipeline, img image.Image, opts TextureOptions) (Texture, error) {
	tex, err := p.NewTexture(img, opts)
	if err != nil {
		return nil, err
	}
	s.publish(tex)
	return tex, nil
}

func (s *TextureSet) publish(tex Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.load()
	next := &textureList{
		textures: append(append([]Texture(nil), old.textures...), tex),
	}
	next.active = len(next.textures) - 1
	s.published.Store(next)
}

// Upload drains the queue through p. Each successful upload becomes active
// in turn; failures are joined into the returned error.
func (s *TextureSet) Upload(p Pipeline) error {
	s.mu.Lock()
	queue := s.pending
	s.pending = nil
	s.mu.Unlock()

	var errs []error
	for _, q := range queue {
		if _, err := s.Add(p, q.img, q.opts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Active returns the active texture, or nil when none has been uploaded.
func (s *TextureSet) Active() Texture {
	l := s.load()
	if l.active < 0 || l.active >= len(l.textures) {
		return nil
	}
	return l.textures[l.active]
}

// ActiveIndex returns the active index, or -1.
func (s *TextureSet) ActiveIndex() int {
	return s.load().active
}

// Len returns the number of published textures.
func (s *TextureSet) Len() int {
	return len(s.load().textures)
}

// SetActive selects a published texture. It reports false for an index out
// of range.
func (s *TextureSet) SetActive(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.load()
	if i < 0 || i >= len(old.textures) {
		return false
	}
	s.published.Store(&textureList{textures: old.textures, active: i})
	return true
}

// Release deletes every published texture through p and empties the set.
func (s *TextureSet) Release(p Pipeline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tex := range s.load().textures {
		p.DeleteTexture(tex)
	}
	s.pending = nil
	s.published.Store(nil)
}
