package main

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/trix3d/internal/measurement"
	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

// entityList shows every entity of the scene. Selecting a row selects the
// entity in the editor.
type entityList struct {
	gui      *GUI
	widget   *widget.List
	entities []scene.Entity
	updating bool
}

func newEntityList(g *GUI) *entityList {
	l := &entityList{gui: g}
	l.widget = widget.NewList(
		func() int { return len(l.entities) },
		func() fyne.CanvasObject { return widget.NewLabel("sphere placeholder name") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			e := l.entities[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s  %s", e.Kind().Title(), displayName(e)))
		},
	)
	l.widget.OnSelected = func(i widget.ListItemID) {
		if l.updating || i >= len(l.entities) {
			return
		}
		l.gui.editor.Select(l.entities[i].ID)
		l.gui.refresh()
	}
	return l
}

func (l *entityList) update(snap scene.Snapshot, selected scene.ID) {
	l.updating = true
	defer func() { l.updating = false }()

	l.entities = snap.Entities()
	l.widget.Refresh()
	for i, e := range l.entities {
		if e.ID == selected {
			l.widget.Select(i)
			return
		}
	}
	l.widget.UnselectAll()
}

func displayName(e scene.Entity) string {
	if e.Name != "" {
		return e.Name
	}
	return string(e.ID)
}

// propertiesPanel edits the selected entity.
type propertiesPanel struct {
	gui       *GUI
	container *fyne.Container
	shown     scene.Entity
}

func newPropertiesPanel(g *GUI) *propertiesPanel {
	return &propertiesPanel{gui: g, container: container.NewVBox()}
}

// show rebuilds the form for id. An unchanged entity keeps its form so edits
// in progress survive unrelated refreshes.
func (p *propertiesPanel) show(id scene.ID) {
	e, ok := p.gui.editor.Get(id)
	if ok && e == p.shown && len(p.container.Objects) > 0 {
		return
	}
	p.shown = e
	p.container.RemoveAll()

	if !ok {
		p.container.Add(widget.NewLabel("Nothing selected"))
		return
	}

	title := widget.NewLabel(e.Kind().Title())
	title.TextStyle = fyne.TextStyle{Bold: true}
	p.container.Add(title)

	editor := newEntityEditor(e)
	form := widget.NewForm(editor.items...)
	form.SubmitText = "Apply"
	form.OnSubmit = func() {
		patch, err := editor.patch()
		if err == nil {
			_, err = p.gui.editor.Update(e.ID, patch)
		}
		if err != nil {
			p.gui.showError(err)
		}
		p.shown = scene.Entity{}
		p.gui.refresh()
	}
	p.container.Add(form)
}

// entityEditor holds the form entries for one entity.
type entityEditor struct {
	entity   scene.Entity
	items    []*widget.FormItem
	name     *widget.Entry
	color    *widget.Entry
	position []*widget.Entry
	radius   *widget.Entry
	height   *widget.Entry
	size     []*widget.Entry
}

func newEntityEditor(e scene.Entity) *entityEditor {
	ed := &entityEditor{entity: e}
	ed.name = ed.entry("Name", e.Name)
	ed.color = ed.entry("Color", e.Color)

	switch s := e.Shape.(type) {
	case scene.Line:
		ed.info("Points", fmt.Sprintf("%s, %s", s.StartPointID, s.EndPointID))
	case scene.Plane:
		ed.info("Points", fmt.Sprintf("%s, %s, %s", s.PointIDs[0], s.PointIDs[1], s.PointIDs[2]))
	case scene.Point:
		ed.position = ed.vector("Position", s.Position)
	case scene.Sphere:
		ed.position = ed.vector("Position", s.Position)
		ed.radius = ed.entry("Radius", formatFloat(s.Radius))
	case scene.Cylinder:
		ed.position = ed.vector("Position", s.Position)
		ed.radius = ed.entry("Radius", formatFloat(s.Radius))
		ed.height = ed.entry("Height", formatFloat(s.Height))
	case scene.Box:
		ed.position = ed.vector("Position", s.Position)
		ed.size = ed.vector("Size", s.Size)
	}
	return ed
}

func (ed *entityEditor) entry(label, value string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(value)
	ed.items = append(ed.items, widget.NewFormItem(label, entry))
	return entry
}

func (ed *entityEditor) info(label, value string) {
	ed.items = append(ed.items, widget.NewFormItem(label, widget.NewLabel(value)))
}

func (ed *entityEditor) vector(label string, v geometry.Vector3) []*widget.Entry {
	entries := make([]*widget.Entry, 3)
	for i, axis := range []string{"X", "Y", "Z"} {
		entries[i] = ed.entry(label+" "+axis, formatFloat(v.Array()[i]))
	}
	return entries
}

// patch collects the entries that differ from the entity.
func (ed *entityEditor) patch() (scene.Patch, error) {
	var patch scene.Patch
	if ed.name.Text != ed.entity.Name {
		patch = patch.WithName(ed.name.Text)
	}
	if ed.color.Text != ed.entity.Color {
		patch = patch.WithColor(ed.color.Text)
	}

	var errs []error
	parse := func(entry *widget.Entry) float64 {
		v, err := strconv.ParseFloat(entry.Text, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid number %q", entry.Text))
		}
		return v
	}
	parseVector := func(entries []*widget.Entry) geometry.Vector3 {
		return geometry.NewVector3(parse(entries[0]), parse(entries[1]), parse(entries[2]))
	}

	if ed.position != nil {
		pos := parseVector(ed.position)
		if current, _ := ed.entity.Position(); pos != current {
			patch = patch.WithPosition(pos)
		}
	}
	switch s := ed.entity.Shape.(type) {
	case scene.Sphere:
		if r := parse(ed.radius); r != s.Radius {
			patch = patch.WithRadius(r)
		}
	case scene.Cylinder:
		if r := parse(ed.radius); r != s.Radius {
			patch = patch.WithRadius(r)
		}
		if h := parse(ed.height); h != s.Height {
			patch = patch.WithHeight(h)
		}
	case scene.Box:
		if size := parseVector(ed.size); size != s.Size {
			patch = patch.WithSize(size)
		}
	}
	return patch, errors.Join(errs...)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// calculatorPanel picks a measurement mode and shows its result.
type calculatorPanel struct {
	gui          *GUI
	container    *fyne.Container
	mode         *widget.Select
	instructions *widget.Label
	result       *widget.Label
}

func newCalculatorPanel(g *GUI) *calculatorPanel {
	c := &calculatorPanel{
		gui:          g,
		instructions: widget.NewLabel(measurement.ModeNone.Instructions()),
		result:       widget.NewLabel(""),
	}
	c.instructions.Wrapping = fyne.TextWrapWord
	c.result.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	labels := make([]string, len(measurement.Modes))
	for i, m := range measurement.Modes {
		labels[i] = m.Label()
	}
	c.mode = widget.NewSelect(labels, func(label string) {
		for _, m := range measurement.Modes {
			if m.Label() == label && m != c.gui.editor.MeasurementMode() {
				c.gui.editor.SetMeasurementMode(m)
				c.gui.refresh()
			}
		}
	})
	c.mode.PlaceHolder = "Calculation"

	title := widget.NewLabel("Calculator")
	title.TextStyle = fyne.TextStyle{Bold: true}
	clearButton := widget.NewButton("Clear", func() {
		c.gui.editor.ClearMeasurement()
		c.gui.refresh()
	})
	c.container = container.NewVBox(title, c.mode, c.instructions, c.result, clearButton)
	c.container.Hide()
	return c
}

func (c *calculatorPanel) update() {
	if !c.gui.editor.CalculatorOpen() {
		c.container.Hide()
		return
	}
	c.container.Show()

	mode := c.gui.editor.MeasurementMode()
	switch {
	case mode == measurement.ModeNone && c.mode.Selected != "":
		c.mode.ClearSelected()
	case mode != measurement.ModeNone && c.mode.Selected != mode.Label():
		c.mode.SetSelected(mode.Label())
	}
	c.instructions.SetText(mode.Instructions())
	c.result.SetText(c.gui.editor.ResultString())
}
