// Package cli provides the interactive registration client.
//
// It wires configuration, the local draft database, the upload backend
// (registration API or S3) and the wizard, then runs a REPL in which each
// step is a command. Answers are saved locally after every committed step,
// so quitting and starting again resumes at the first unfinished step.
//
// Typical session:
//
//	class, student, family, education
//	attach studentPhotos ./photo.jpg   (and one file for every other slot)
//	review
//	submit
//
// See App.Run and runREPL for details.
package cli
