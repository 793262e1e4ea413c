/*
Package cli provides command-line interface utilities for the formula tool.

The cli package includes output formatters, progress reporters, and common CLI
helpers used by the formula command.

Output Formatting:

The cli package supports multiple output formats (text, JSON, CSV, JUnit) for
displaying command results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, scenarios); err != nil {
		return err
	}

CSV output requires the data to implement Tabular.

Progress Reporting:

For commands that walk many catalog files, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(len(files))
	for _, file := range files {
		lint(file)
		progress.Done(file)
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
