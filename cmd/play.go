package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/solfege/constants"
	"github.com/jsphweid/solfege/file"
	"github.com/jsphweid/solfege/lexer"
	"github.com/jsphweid/solfege/midi"
	"github.com/jsphweid/solfege/model"
	"github.com/jsphweid/solfege/playback"
	"github.com/jsphweid/solfege/report"
	"github.com/jsphweid/solfege/synth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

type outputFlags struct {
	midiPort string
	mute     bool
}

var playOutput outputFlags

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.midiPort, "midi-port", constants.GetMidiPort(), "play on this MIDI output port (number or name) instead of synthesizing")
	cmd.Flags().BoolVar(&o.mute, "mute", false, "go through the score without making a sound")
}

// newPlayer picks the output for playback. The returned func releases it.
func (o outputFlags) newPlayer() (playback.Player, func(), error) {
	switch {
	case o.mute:
		return synth.New(synth.Silence{Realtime: true}), func() {}, nil
	case o.midiPort != "":
		p, err := midi.OpenPlayer(o.midiPort)
		if err != nil {
			return nil, nil, err
		}
		return p, midi.Close, nil
	}
	device, err := synth.NewOtoDevice()
	if err != nil {
		return nil, nil, err
	}
	return synth.New(device), func() {}, nil
}

func init() {
	playOutput.register(playCmd)
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Prints the report of a score and plays it",
	Long: `Prints the report of a score and plays it, one note at a time.
Press Ctrl+C to stop. Without a file the bundled example is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := file.Load(pathArg(args))
		if err != nil {
			return err
		}
		res := lexer.Analyze(text)
		out := cmd.OutOrStdout()
		if err := report.Write(out, res, source); err != nil {
			return err
		}

		player, release, err := playOutput.newPlayer()
		if err != nil {
			return err
		}
		defer release()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return play(ctx, out, playback.New(player), res)
	},
}

// play runs one session over res and reports how it ended. Cancelling ctx
// stops playback.
func play(ctx context.Context, out io.Writer, seq *playback.Sequencer, res model.Result) error {
	seq.OnProgress = printProgress(out)
	fmt.Fprintln(out, "\nStarting playback")

	session := seq.PlayAll(res)
	select {
	case <-session.Done():
	case <-ctx.Done():
		session.Cancel()
	}

	state, err := session.Wait()
	switch state {
	case playback.Completed:
		fmt.Fprintln(out, "\nPlayback completed")
	case playback.Cancelled:
		fmt.Fprintln(out, "\nPlayback stopped")
	case playback.Failed:
		return errors.Wrap(err, "playback failed")
	}
	return nil
}

func printProgress(out io.Writer) func(playback.Progress) {
	debounced := debounce.New(100 * time.Millisecond)
	return func(p playback.Progress) {
		if p.Index == 0 {
			fmt.Fprintf(out, "\nPlaying paragraph %d of %d...\n", p.Paragraph+1, p.NumParagraphs)
		}
		debounced(func() {
			fmt.Fprintf(out, "  %v\n", p.Note)
		})
	}
}
