package main

import (
	"github.com/fhw-wedel/timetable-solver/pkg/export"
	"github.com/fhw-wedel/timetable-solver/pkg/storage"
)

func exportCSV(localStorage *storage.LocalStorage, data export.Dataset) error {
	bytes, err := export.NewCSVExporter().Render(data)
	if err != nil {
		return err
	}
	_, err = localStorage.Save("timetable.csv", bytes)
	return err
}

func exportPDF(localStorage *storage.LocalStorage, data export.Dataset, title string) error {
	bytes, err := export.NewPDFExporter().Render(data, title)
	if err != nil {
		return err
	}
	_, err = localStorage.Save("timetable.pdf", bytes)
	return err
}
