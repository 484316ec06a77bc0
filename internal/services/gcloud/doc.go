// Package gcloud adapts Google Cloud Translation and Text-to-Speech to the
// Translator and Synthesizer contracts used by the course composer.
//
// Clients authenticate with the service account key from
// paths.credentials_file and bill the project chosen in the setup wizard.
// Errors carry services markers: rate limits and 5xx responses are
// ErrTransient, other failures ErrExternalTool.
package gcloud
