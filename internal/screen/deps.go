package screen

import (
	"github.com/sirupsen/logrus"

	"github.com/abhisek/wordiz/internal/audio"
	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/store"
)

// Deps are the collaborators screens are built with. Catalog and
// Progress are required; the rest may be nil.
type Deps struct {
	Catalog  *content.Catalog
	Progress *progress.Store
	Mastery  *mastery.Service
	Events   store.EventRepo
	Speaker  audio.Speaker
	Log      logrus.FieldLogger

	// EngineOptions are appended to every engine built by a screen.
	EngineOptions []session.Option
}

// Engine returns the options every practice engine is built with.
func (d Deps) Engine() []session.Option {
	opts := []session.Option{session.WithSpeaker(d.Speaker)}
	if d.Log != nil {
		opts = append(opts, session.WithLogger(d.Log))
	}
	if d.Events != nil {
		opts = append(opts, session.WithHistory(session.NewStoreHistory(d.Events)))
	}
	return append(opts, d.EngineOptions...)
}

// Speak pronounces text when a speaker is configured.
func (d Deps) Speak(text string) {
	if d.Speaker != nil {
		d.Speaker.Speak(text)
	}
}

// Stats returns the mastery service, building one over Catalog and
// Progress when none was supplied.
func (d Deps) Stats() *mastery.Service {
	if d.Mastery != nil {
		return d.Mastery
	}
	return mastery.NewService(d.Catalog, d.Progress)
}
