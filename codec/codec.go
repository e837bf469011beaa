package codec

import (
	"os"

	"dentledger-backend/models"
)

// Default file names, relative to the working directory unless overridden.
const (
	defaultProcFile = "Procedures.txt"
	defaultPatFile  = "Patients.txt"
	defaultDentFile = "Dentists.txt"
)

// Paths names the three clinic data files.
type Paths struct {
	Procedures string
	Patients   string
	Dentists   string
}

// PathsFromEnv reads the data file locations from PROC_FILE, PAT_FILE and
// DENT_FILE, falling back to the default names.
func PathsFromEnv() Paths {
	p := Paths{
		Procedures: os.Getenv("PROC_FILE"),
		Patients:   os.Getenv("PAT_FILE"),
		Dentists:   os.Getenv("DENT_FILE"),
	}
	if p.Procedures == "" {
		p.Procedures = defaultProcFile
	}
	if p.Patients == "" {
		p.Patients = defaultPatFile
	}
	if p.Dentists == "" {
		p.Dentists = defaultDentFile
	}
	return p
}

// Codec serializes and deserializes the clinic data files. Readers that
// fail partway return whatever they decoded before the failure together
// with the error, so the caller can keep the partial data. It is an
// interface so the positional line format can be swapped for a safer
// delimited or length-prefixed one without touching the data model.
type Codec interface {
	ReadProcedures(path string, seqs *models.Sequences) ([]*models.Procedure, error)
	WriteProcedures(path string, procs []*models.Procedure) error

	ReadDentists(path string) ([]*models.Dentist, error)
	WriteDentists(path string, dentists []*models.Dentist) error

	ReadPatients(path string, seqs *models.Sequences) ([]*models.Patient, error)
	WritePatients(path string, patients []*models.Patient) error
}
