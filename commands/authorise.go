package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

var AuthoriseCmd = Authorise{
	browser: true,
}

// Authorise runs the OAuth2 authorisation code flow against a loopback redirect and saves the tokens
// for the other commands.
type Authorise struct {
	command
	port    int
	browser bool
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return fmt.Sprintf("Authorises %v to access your Google Sheets workout log", APP)
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options]\n", APP)
	fmt.Println()
	fmt.Printf("  Authorises %v to read and update your Google Sheets workout log. The OAuth2 tokens\n", APP)
	fmt.Println("  are stored in the tokens directory and refreshed automatically.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v authorise --credentials \"credentials.json\"\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("authorise")

	flagset.IntVar(&cmd.port, "port", cmd.port, "Port for the local OAuth2 redirect. Defaults to a random port")
	flagset.BoolVar(&cmd.browser, "browser", cmd.browser, "Opens the authorisation page in the default browser")

	return flagset
}

func (cmd *Authorise) Execute(ctx context.Context, options *Options) error {
	cfg, err := cmd.configure(options)
	if err != nil {
		return err
	}

	conf, err := oauthConfig(cfg.Credentials)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%v", cmd.port))
	if err != nil {
		return err
	}

	conf.RedirectURL = fmt.Sprintf("http://localhost:%v", listener.Addr().(*net.TCPAddr).Port)

	state := uuid.NewString()
	url := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	authorised := make(chan string, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		if rq.FormValue("state") != state {
			http.Error(w, "Invalid state", http.StatusBadRequest)
			return
		}

		if e := rq.FormValue("error"); e != "" {
			http.Error(w, fmt.Sprintf("Authorisation failed (%v)", e), http.StatusForbidden)
			return
		}

		code := rq.FormValue("code")
		if code == "" {
			http.Error(w, "Missing authorisation code", http.StatusBadRequest)
			return
		}

		fmt.Fprintf(w, "%v authorised - you can close this window\n", APP)

		select {
		case authorised <- code:
		default:
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// ... open OAuth2 URL in browser
	fmt.Printf("Go to the following link in your browser to authorise %v:\n\n%v\n\n", APP, url)

	if cmd.browser {
		if err := exec.Command(OPEN_URL, url).Start(); err != nil {
			fmt.Println("Could not open the authorisation page in your browser - please open the link manually")
		}
	}

	// ... wait for authorisation
	select {
	case <-interrupt:
		fmt.Printf("\n.. cancelled\n\n")
		return nil

	case <-ctx.Done():
		return ctx.Err()

	case code := <-authorised:
		token, err := conf.Exchange(ctx, code)
		if err != nil {
			return fmt.Errorf("unable to retrieve token from web (%v)", err)
		}

		file := cfg.TokenFile()
		if err := saveToken(file, token); err != nil {
			return err
		}

		infof("Saved OAuth2 tokens to %v", file)
	}

	return nil
}
