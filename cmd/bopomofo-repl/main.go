// Command bopomofo-repl is a thin harness for exercising the engine
// end-to-end: it loads a base language model (and optionally user
// phrases, excluded phrases and a phrase replacement map), reads
// whitespace-separated key sequences for the selected keyboard layout
// from stdin, one token per syllable, and on a blank line prints the
// maximum-weight walk the engine finds for everything entered so far.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mcbopomofo/bopomofo-engine/internal/bopomofo"
	"github.com/mcbopomofo/bopomofo-engine/internal/grid"
	"github.com/mcbopomofo/bopomofo-engine/internal/languagemodel"
	"github.com/mcbopomofo/bopomofo-engine/internal/walker"
)

var (
	lmPath          = flag.String("lm", "", "path to the base language model data file (required)")
	userPhrasesPath = flag.String("user", "", "path to a user phrases data file")
	excludedPath    = flag.String("excluded", "", "path to an excluded phrases data file")
	replacementPath = flag.String("replacement", "", "path to a phrase replacement map file")
	layoutName      = flag.String("layout", "standard", "keyboard layout: standard, ibm, eten, eten26, hsu, or pinyin")
)

func layoutByName(name string) (*bopomofo.Layout, error) {
	switch strings.ToLower(name) {
	case "standard":
		return bopomofo.StandardLayout, nil
	case "ibm":
		return bopomofo.IBMLayout, nil
	case "eten":
		return bopomofo.ETenLayout, nil
	case "eten26":
		return bopomofo.ETen26Layout, nil
	case "hsu":
		return bopomofo.HsuLayout, nil
	case "pinyin":
		return bopomofo.HanyuPinyinLayout, nil
	default:
		return nil, fmt.Errorf("unknown layout %q", name)
	}
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *lmPath == "" {
		fmt.Fprintln(os.Stderr, "usage: bopomofo-repl -lm <path> [-user <path>] [-excluded <path>] [-replacement <path>] [-layout <name>]")
		os.Exit(2)
	}

	layout, err := layoutByName(*layoutName)
	if err != nil {
		log.Fatalf("bopomofo-repl: %v", err)
	}

	lm := &languagemodel.McBopomofoLM{}
	if err := lm.LoadLanguageModel(*lmPath); err != nil {
		log.Fatalf("bopomofo-repl: loading base language model: %v", err)
	}
	defer lm.Close()
	log.Printf("loaded base language model from %s", *lmPath)

	if *userPhrasesPath != "" || *excludedPath != "" {
		if err := lm.LoadUserPhrases(*userPhrasesPath, *excludedPath); err != nil {
			log.Fatalf("bopomofo-repl: loading user phrases: %v", err)
		}
		log.Printf("loaded user phrases from %s (excluded: %s)", *userPhrasesPath, *excludedPath)
	}

	if *replacementPath != "" {
		if err := lm.LoadPhraseReplacementMap(*replacementPath); err != nil {
			log.Fatalf("bopomofo-repl: loading phrase replacement map: %v", err)
		}
		lm.SetPhraseReplacementEnabled(true)
		log.Printf("loaded phrase replacement map from %s", *replacementPath)
	}

	g := grid.New(lm)
	buffer := bopomofo.NewReadingBuffer(layout)

	fmt.Println("enter whitespace-separated keys for each syllable (layout:", layout.Name(), "); blank line walks the grid; \"clear\" resets it")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			printWalk(g)
			continue
		case line == "clear":
			g.Clear()
			continue
		}

		for _, token := range strings.Fields(line) {
			buffer.Clear()
			for i := 0; i < len(token); i++ {
				if !buffer.CombineKey(token[i]) {
					fmt.Fprintf(os.Stderr, "invalid key %q in %q, skipping token\n", token[i], token)
					buffer.Clear()
					break
				}
			}
			if buffer.IsEmpty() {
				continue
			}
			reading := buffer.Syllable().ComposedString()
			if !g.InsertReading(reading) {
				fmt.Fprintf(os.Stderr, "reading %q has no candidates, skipping\n", reading)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("bopomofo-repl: reading stdin: %v", err)
	}
}

func printWalk(g *grid.Grid) {
	result := walker.Walk(g)
	if len(result.Nodes) == 0 {
		fmt.Println("(empty)")
		return
	}
	fmt.Println(strings.Join(result.ValuesAsStrings(), ""))
	for i, reading := range result.ReadingsAsStrings() {
		fmt.Printf("  %s -> %s\n", reading, result.ValuesAsStrings()[i])
	}
}
