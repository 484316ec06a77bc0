package setup

import (
	"fmt"

	"audiocourse/internal/wizard"
)

// BuildOverview is shown before a build. It saves nothing; typing an exit
// word cancels the build.
func BuildOverview(courseDir string, sentences int) wizard.Step {
	return anyInputStep{wizard.Base{
		ID: "build-overview",
		Explanation: fmt.Sprintf(`Each qualified sentence becomes a folder in
  %s
holding three tracks:
  1-sentence.ogg           the sentence, then its repeats
  2-word-definitions.ogg   each word followed by its meaning
  3-repeat-sentence.ogg    the lead track again

Folders that already exist are skipped. %d sentences are ready.`, courseDir, sentences),
		PromptText: "Press Enter to build, or type exit to cancel...",
	}}
}
