package main

import (
	"log"

	"github.com/darkautism/asesheet"
	"github.com/darkautism/asesheet/sheet"
)

func main() {
	g, err := asesheet.LoadAseprite("idle outline.ase")
	if err != nil {
		log.Fatal(err)
	}
	if err := sheet.WritePNG(g.Frame(0), "img.png"); err != nil {
		log.Fatal(err)
	}

	// Every tag's first two frames, four tiles per row.
	var tags []string
	for _, t := range g.Tags {
		tags = append(tags, t.Name)
	}
	err = sheet.Assemble(g, "sheet.png", sheet.Options{Tags: tags, FramesPerTag: 2, Columns: 4})
	if err != nil {
		log.Fatal(err)
	}
}
