package deps

// MediaRequirements lists the FFmpeg tools used to assemble and verify tracks.
func MediaRequirements(ffmpegCommand, ffprobeCommand string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegCommand,
			Description: "Concatenates speech clips and encodes Opus tracks",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobeCommand,
			Description: "Verifies built tracks contain audio",
		},
	}
}

// CheckMedia reports FFmpeg and FFprobe availability.
func CheckMedia(ffmpegCommand, ffprobeCommand string) []Status {
	return CheckBinaries(MediaRequirements(ffmpegCommand, ffprobeCommand))
}
