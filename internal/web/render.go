package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"

	"github.com/illmade-knight/service-info/pkg/detail"
	"github.com/illmade-knight/service-info/pkg/i18n"
	"github.com/illmade-knight/service-info/pkg/services"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// rtlLanguages are written right to left.
var rtlLanguages = map[string]bool{"ar": true}

func direction(lang string) string {
	if rtlLanguages[lang] {
		return "rtl"
	}
	return "ltr"
}

// servicePage is the data of the service template.
type servicePage struct {
	detail.ViewModel
	translator i18n.Translator
}

// T translates a label key.
func (p servicePage) T(key string) string { return p.translator.Translate(key) }

// Text picks the page language variant of a localized field.
func (p servicePage) Text(l services.Localized) string { return l.In(p.Lang) }

func (p servicePage) Dir() string { return direction(p.Lang) }

type errorPage struct {
	Lang    string
	Title   string
	Message string
}

func (p errorPage) Dir() string { return direction(p.Lang) }

// htmlRenderer writes the service page into buf. The handler decides the
// status code after the controller settles.
type htmlRenderer struct {
	tmpl       *template.Template
	translator func(lang string) i18n.Translator
	buf        bytes.Buffer
}

func (r *htmlRenderer) Render(ctx context.Context, vm detail.ViewModel) error {
	r.buf.Reset()
	return r.tmpl.ExecuteTemplate(&r.buf, "service.html", servicePage{ViewModel: vm, translator: r.translator(vm.Lang)})
}

// jsonRenderer encodes the view model.
type jsonRenderer struct {
	buf bytes.Buffer
}

func (r *jsonRenderer) Render(ctx context.Context, vm detail.ViewModel) error {
	r.buf.Reset()
	return json.NewEncoder(&r.buf).Encode(vm)
}
