// Package templates renders the named message bodies sent to customers.
// Data arrives as decoded JSON, so the templates work against maps and
// tolerate missing fields.
package templates

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
)

var funcMap = template.FuncMap{
	"firstWord":  firstWord,
	"formatDate": formatDate,
	"amount":     amount,
	"money":      money,
	"sub":        func(a, b interface{}) float64 { return amount(a) - amount(b) },
}

const welcomeTmpl = `Hola {{.first_name}},

Estos son los detalles de tu pedido:

{{range .products}}- {{.name}}: {{.cantidad}} unidades
{{end}}`

const orderDetailsTmpl = `Hola {{firstWord .customer_name}}, ya hemos ingresado tu pedido a nuestra fila de producción

Tu orden es la número {{.order_id}}.
Fecha de entrega: *{{formatDate .delivery_date}}*

Los productos solicitados son:

{{range .products}}- *{{.name}}:*{{if .talla}} Talla {{.talla}},{{end}} {{.cantidad}} unidades
{{end}}
{{- if gt (amount .pago_descuento) 0.0}}
- Descuento: *{{money .pago_descuento}}*{{end}}
{{- if gt (amount .pago_abono) 0.0}}
- Abono: *{{money .pago_abono}}*{{end}}
{{- if gt (sub .pago_total .pago_abono) 0.0}}
- Pendiente: *{{money (sub .pago_total .pago_abono)}}*{{end}}
- Total: *{{money .pago_total}}*

Te estaremos informando sobre el progreso de la fabricación de tu pedido.
Felíz Día!!!`

var registry = mustParseAll(map[string]string{
	"welcome":        welcomeTmpl,
	"orden-detalles": orderDetailsTmpl,
})

func mustParseAll(sources map[string]string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(sources))
	for name, src := range sources {
		parsed[name] = template.Must(template.New(name).Funcs(funcMap).Parse(src))
	}
	return parsed
}

// Render executes the named template with the given data.
func Render(name string, data interface{}) (string, error) {
	tmpl, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrTemplateNotFound, name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errs.Wrapf(err, "rendering template %q", name)
	}
	return buf.String(), nil
}

// Names lists the available templates.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// firstWord returns the first word of a customer name, "cliente" when empty.
func firstWord(v interface{}) string {
	s, _ := v.(string)
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "cliente"
	}
	return fields[0]
}

// formatDate turns "2026-01-31" into "31/01/2026".
func formatDate(v interface{}) string {
	s, _ := v.(string)
	parts := strings.Split(s, "-")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// amount coerces decoded JSON values (float64, string, int) to a float64.
func amount(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func money(v interface{}) string {
	return strconv.FormatFloat(amount(v), 'f', 2, 64)
}
