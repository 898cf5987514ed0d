package handlers

import (
	"html/template"
	"io"
	"path"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Template renders the server-side views. In development the view
// directory is watched and templates are re-parsed on write.
type Template struct {
	dir       string
	templates *template.Template
	watcher   *fsnotify.Watcher
}

func NewTemplate(dir string) (*Template, error) {
	t := &Template{
		dir:       dir,
		templates: template.Must(template.ParseGlob(path.Join(dir, "*.html"))),
	}
	return t, nil
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func (t *Template) Watch() {
	var err error

	t.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("watcher: %+v", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-t.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) {
					log.Infof("modified file: %s", event.Name)
					t.templates = template.Must(template.ParseGlob(path.Join(t.dir, "*.html")))
				}
			case err, ok := <-t.watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watcher: %+v", err)
			}
		}
	}()

	err = t.watcher.Add(t.dir)
	if err != nil {
		log.Fatalf("watcher: %+v", err)
	}
}

func (t *Template) Close() {
	if t.watcher != nil {
		t.watcher.Close()
	}
}
