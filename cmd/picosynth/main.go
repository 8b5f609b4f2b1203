// Command picosynth wires a synth.Engine to a real-time audio sink and a
// MIDI queue. A real deployment would feed the queue from a USB-MIDI or
// serial transport; this host pushes a short phrase itself.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	synth "github.com/ice458/pico-synth"
	"github.com/ice458/pico-synth/midi"
)

func main() {
	fmt.Println("pico-synth: polyphonic MIDI synthesizer core")

	engine := synth.NewEngine(synth.EngineOptions{Logger: log.Default()})

	queue := &midi.Queue{}
	engine.AttachQueue(queue)

	sink, err := synth.NewOtoSink(engine, synth.SampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio output unavailable: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()
	sink.Start()

	// A transport collaborator would push decoded messages onto queue from
	// a USB-MIDI ISR or similar; this demo host pushes a short self-test
	// phrase directly so the engine is audible without external hardware.
	queue.Push(midi.NoteOn(0, 60, 100))
	time.Sleep(500 * time.Millisecond)
	queue.Push(midi.NoteOff(0, 60))

	for i := 0; i < 2; i++ {
		engine.DrainOne()
		time.Sleep(600 * time.Millisecond)
	}
}
