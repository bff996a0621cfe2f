// Command sbn converts between SBN and Penman notation and compares SBN
// documents pairwise. Errors are fatal per document, never for a batch:
// failing documents are reported on stderr and skipped.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	sbn "github.com/texttheater/Parallel-Meaning-Bank-5"
)

const historyFile = ".sbn_history"

func main() {
	log.SetFlags(0)
	log.SetPrefix("sbn: ")

	root := &cobra.Command{
		Use:           "sbn",
		Short:         "SBN graph toolkit: parse, serialize, compare",
		Version:       sbn.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(convertCmd(), compareCmd(), replCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

/* ---------- convert ---------- */

func convertCmd() *cobra.Command {
	var (
		input      string
		format     string
		singleLine bool
		permissive bool
		sense      bool
		comments   bool
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert SBN documents to Penman or normalized SBN",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDocuments(input, singleLine)
			if err != nil {
				return err
			}
			failures := 0
			for i, doc := range docs {
				g, err := parseDocument(doc, singleLine)
				if err != nil {
					failures++
					log.Printf("document %d: %v", i, err)
					continue
				}
				var out string
				switch format {
				case "penman":
					out, err = g.ToPenmanString(sense, !permissive)
				case "sbn":
					out, err = g.ToSBNString(comments)
				default:
					return fmt.Errorf("unknown format %q (want penman or sbn)", format)
				}
				if err != nil {
					failures++
					log.Printf("document %d: %v", i, err)
					continue
				}
				fmt.Println(out)
				fmt.Println()
			}
			if failures > 0 {
				log.Printf("%d/%d documents failed", failures, len(docs))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input SBN file (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "penman", "output format: penman or sbn")
	cmd.Flags().BoolVar(&singleLine, "single-line", false, "treat every input line as one whitespace-joined document")
	cmd.Flags().BoolVar(&permissive, "permissive", false, "serialize possibly ill-formed graphs too")
	cmd.Flags().BoolVar(&sense, "sense", false, "emit :sense in permissive Penman output")
	cmd.Flags().BoolVar(&comments, "comments", false, "keep provenance and reading comments in SBN output")
	cobra.CheckErr(cmd.MarkFlagRequired("input"))
	return cmd
}

/* ---------- compare ---------- */

func compareCmd() *cobra.Command {
	var (
		file1  string
		file2  string
		fixIll bool
		detail string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two files of one-line SBN documents pairwise",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs1, err := readDocuments(file1, true)
			if err != nil {
				return err
			}
			docs2, err := readDocuments(file2, true)
			if err != nil {
				return err
			}
			if len(docs1) != len(docs2) {
				log.Printf("warning: files differ in length (%d vs %d)", len(docs1), len(docs2))
			}
			n := len(docs1)
			if len(docs2) < n {
				n = len(docs2)
			}

			var isomorphic, textMatch, goldErrors, predErrors int
			for i := 0; i < n; i++ {
				// Gold side: tab-separated prefixes are metadata, the SBN is
				// the last field.
				fields := strings.Split(docs1[i], "\t")
				g1, err := sbn.FromSingleLineSource(strings.TrimSpace(fields[len(fields)-1]), sbn.SourcePMB)
				var p1 string
				if err == nil {
					p1, err = g1.ToPenmanString(false, true)
				}
				if err != nil {
					goldErrors++
					log.Printf("gold document %d: %v", i, err)
					continue
				}

				g2, p2, err := parsePrediction(docs2[i], fixIll)
				if err != nil {
					predErrors++
					log.Printf("predicted document %d: %v", i, err)
					continue
				}

				if sbn.GraphsAreIsomorphic(g1, g2) {
					isomorphic++
				}
				d := sbn.FineGrainedDetail(detail)
				if sbn.FineGrained(p1, d) == sbn.FineGrained(p2, d) {
					textMatch++
				}
			}

			fmt.Printf("documents:    %d\n", n)
			fmt.Printf("isomorphic:   %d\n", isomorphic)
			fmt.Printf("text matches: %d (detail: %s)\n", textMatch, detail)
			fmt.Printf("gold errors:  %d\n", goldErrors)
			fmt.Printf("pred errors:  %d\n", predErrors)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file1, "gold", "1", "", "gold SBN file, one document per line (required)")
	cmd.Flags().StringVarP(&file2, "predicted", "2", "", "predicted SBN file, one document per line (required)")
	cmd.Flags().BoolVar(&fixIll, "fix-ill", false, "repair unparsable predictions by truncating tokens")
	cmd.Flags().StringVarP(&detail, "detail", "d", "none", "fine-grained rewrite: role, relation, operator or sense")
	cobra.CheckErr(cmd.MarkFlagRequired("gold"))
	cobra.CheckErr(cmd.MarkFlagRequired("predicted"))
	return cmd
}

// parsePrediction parses a predicted one-line document. With fixIll, a
// failing document is retried with one token dropped from the end at a
// time; when nothing is left, the trivial "entity.n.01" document stands in.
func parsePrediction(doc string, fixIll bool) (*sbn.Graph, string, error) {
	tryOne := func(line string) (*sbn.Graph, string, error) {
		g, err := sbn.FromSingleLineSource(line, sbn.SourceSeq2Seq)
		if err != nil {
			return nil, "", err
		}
		p, err := g.ToPenmanString(false, true)
		if err != nil {
			return nil, "", err
		}
		return g, p, nil
	}

	if !fixIll {
		return tryOne(doc)
	}
	tokens := strings.Fields(doc)
	for length := len(tokens); length > 1; length-- {
		g, p, err := tryOne(strings.Join(tokens[:length], " "))
		if err == nil {
			return g, p, nil
		}
	}
	return tryOne("entity.n.01")
}

/* ---------- repl ---------- */

func replCmd() *cobra.Command {
	var permissive bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively convert one-line SBN input to Penman",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("SBN %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", sbn.Version)

			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			histPath := historyPath()
			if f, err := os.Open(histPath); err == nil {
				line.ReadHistory(f)
				f.Close()
			}
			defer func() {
				if f, err := os.Create(histPath); err == nil {
					line.WriteHistory(f)
					f.Close()
				}
			}()

			for {
				input, err := line.Prompt("sbn> ")
				if err != nil {
					fmt.Println()
					return nil
				}
				input = strings.TrimSpace(input)
				if input == "" {
					continue
				}
				if input == ":quit" {
					return nil
				}
				line.AppendHistory(input)

				g, err := sbn.FromSingleLine(input)
				if err != nil {
					fmt.Println(sbn.WrapErrorWithDocument(err, sbn.SplitSingle(input)))
					continue
				}
				out, err := g.ToPenmanString(false, !permissive)
				if err != nil {
					fmt.Println(err)
					continue
				}
				fmt.Println(out)
			}
		},
	}
	cmd.Flags().BoolVar(&permissive, "permissive", false, "serialize possibly ill-formed graphs too")
	return cmd
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

/* ---------- input ---------- */

// readDocuments reads input documents: one per line in single-line mode,
// otherwise the whole file is one multi-line document.
func readDocuments(path string, singleLine bool) ([]string, error) {
	if !singleLine {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return []string{string(data)}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			docs = append(docs, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func parseDocument(doc string, singleLine bool) (*sbn.Graph, error) {
	if singleLine {
		return sbn.FromSingleLine(doc)
	}
	return sbn.FromString(doc)
}
