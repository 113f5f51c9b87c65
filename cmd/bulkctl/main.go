// bulkctl is a command-line client for the go-bulk-notes server. It pushes
// JSON payloads through the bulk endpoints and prints the server responses.
//
// Usage:
//
//	bulkctl [flags] list
//	bulkctl [flags] get <id>
//	bulkctl [flags] create <payload.json>
//	bulkctl [flags] update <payload.json>
//	bulkctl [flags] delete <id>[,<id>...]
//	bulkctl [flags] version
//
// The create payload is a JSON list of note objects (a single object is
// accepted and wrapped). The update payload is a JSON list of change objects;
// pass -partial to send it as a PATCH so absent fields keep their stored
// values. A bearer token is taken from -token, or minted locally when
// -token-sign-key is provided.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/MKhiriev/go-bulk-notes/internal/adapter"
	"github.com/MKhiriev/go-bulk-notes/internal/bulk"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/internal/utils"
	"github.com/MKhiriev/go-bulk-notes/models"
)

type options struct {
	address        string
	requestTimeout time.Duration
	token          string
	tokenSignKey   string
	tokenIssuer    string
	tokenDuration  time.Duration
	subjectID      int64
	tag            string
	done           string
	partial        bool
}

func main() {
	log := logger.NewLogger("bulkctl")

	opts := parseOptions()
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	client, err := newClient(opts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client")
	}

	ctx := context.Background()
	if err = runCommand(ctx, client, opts, args); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func parseOptions() options {
	var opts options

	flag.StringVar(&opts.address, "s", "localhost:8080", "Server address host:port or URL")
	flag.DurationVar(&opts.requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&opts.token, "token", "", "Bearer token attached to every request")
	flag.StringVar(&opts.tokenSignKey, "token-sign-key", "", "Sign key for minting a token locally (alternative to -token)")
	flag.StringVar(&opts.tokenIssuer, "token-issuer", "", "Issuer claim of the minted token")
	flag.DurationVar(&opts.tokenDuration, "token-duration", time.Hour, "Lifetime of the minted token")
	flag.Int64Var(&opts.subjectID, "subject", 1, "Subject claim of the minted token")
	flag.StringVar(&opts.tag, "tag", "", "Filter: exact tag value (list)")
	flag.StringVar(&opts.done, "done", "", "Filter: completion state, true or false (list)")
	flag.BoolVar(&opts.partial, "partial", false, "Send update as PATCH: absent fields keep stored values")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] <list|get|create|update|delete|version> [args]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	return opts
}

func newClient(opts options, log *logger.Logger) (adapter.NotesClient, error) {
	token := opts.token
	if token == "" && opts.tokenSignKey != "" {
		minted, err := utils.GenerateJWTToken(opts.tokenIssuer, opts.subjectID, opts.tokenDuration, opts.tokenSignKey)
		if err != nil {
			return nil, fmt.Errorf("mint token: %w", err)
		}
		token = minted.SignedString
	}

	return adapter.NewHTTPNotesClient(adapter.HTTPClientConfig{
		BaseURL: opts.address,
		Timeout: opts.requestTimeout,
		Token:   token,
	}, log)
}

func runCommand(ctx context.Context, client adapter.NotesClient, opts options, args []string) error {
	switch command := args[0]; command {
	case "list":
		return listNotes(ctx, client, opts)
	case "get":
		if len(args) < 2 {
			return errors.New("get: missing note id")
		}
		return getNote(ctx, client, args[1])
	case "create":
		if len(args) < 2 {
			return errors.New("create: missing payload file")
		}
		return createNotes(ctx, client, args[1])
	case "update":
		if len(args) < 2 {
			return errors.New("update: missing payload file")
		}
		return updateNotes(ctx, client, args[1], opts.partial)
	case "delete":
		if len(args) < 2 {
			return errors.New("delete: missing id list")
		}
		return deleteNotes(ctx, client, args[1])
	case "version":
		version, err := client.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func listNotes(ctx context.Context, client adapter.NotesClient, opts options) error {
	var filter models.NoteFilter
	filter.Tag = opts.tag
	if opts.done != "" {
		done, err := strconv.ParseBool(opts.done)
		if err != nil {
			return fmt.Errorf("invalid -done value %q: %w", opts.done, err)
		}
		filter.Done = &done
	}

	notes, err := client.List(ctx, filter)
	if err != nil {
		return err
	}
	return printJSON(notes)
}

func getNote(ctx context.Context, client adapter.NotesClient, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid note id %q: %w", rawID, err)
	}

	note, err := client.Get(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(note)
}

func createNotes(ctx context.Context, client adapter.NotesClient, path string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	var notes []models.Note
	if bulk.IsListPayload(body) {
		if err = json.Unmarshal(body, &notes); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	} else {
		var note models.Note
		if err = json.Unmarshal(body, &note); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		notes = []models.Note{note}
	}

	created, err := client.CreateMany(ctx, notes)
	if err != nil {
		return err
	}
	return printJSON(created)
}

func updateNotes(ctx context.Context, client adapter.NotesClient, path string, partial bool) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	var changes []models.NoteChange
	if err = json.Unmarshal(body, &changes); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	updated, err := client.UpdateMany(ctx, changes, partial)
	if err != nil {
		return err
	}
	return printJSON(updated)
}

func deleteNotes(ctx context.Context, client adapter.NotesClient, rawIDs string) error {
	ids, err := bulk.ParseIDList(rawIDs)
	if err != nil {
		return fmt.Errorf("invalid id list %q: %w", rawIDs, err)
	}

	if err = client.DeleteMany(ctx, ids); err != nil {
		return err
	}
	fmt.Printf("deleted %d note(s) requested\n", len(ids))
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// reportError prints the error to stderr; per-item validation failures are
// rendered as the positional JSON list the server returned.
func reportError(err error) {
	var bulkErr *models.BulkValidationError
	if errors.As(err, &bulkErr) {
		fmt.Fprintln(os.Stderr, "validation failed:")
		if out, mErr := json.MarshalIndent(bulkErr.Items, "", "  "); mErr == nil {
			fmt.Fprintln(os.Stderr, string(out))
		}
		return
	}

	var fieldErr *models.ValidationError
	if errors.As(err, &fieldErr) {
		fmt.Fprintln(os.Stderr, "validation failed:")
		if out, mErr := json.MarshalIndent(fieldErr.Fields, "", "  "); mErr == nil {
			fmt.Fprintln(os.Stderr, string(out))
		}
		return
	}

	fmt.Fprintln(os.Stderr, err)
}
