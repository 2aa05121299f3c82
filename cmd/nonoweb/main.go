// Command nonoweb is the web workshop: it serves the stored
// puzzle collection, solves and disambiguates puzzles over a
// JSON API, and tracks each designer's editing session in
// storage.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/paulstansifer/convert-nonogram/client"
	"github.com/paulstansifer/convert-nonogram/puzzle"
	"github.com/paulstansifer/convert-nonogram/storage"
)

var log = logrus.New()

const (
	cookieName = "workshopID"
	cookiePath = "/"
)

var startTime = time.Now()

func main() {
	// establish the storage connections
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		log.WithError(err).Fatal("Couldn't connect to storage")
	}
	defer storage.Close()
	log.WithFields(logrus.Fields{
		"cache":    cacheId,
		"database": databaseId,
	}).Info("Connected to storage")

	if err := client.VerifyResources(); err != nil {
		log.WithError(err).Fatal("Couldn't find web resources")
	}

	// catch signals so the deferred storage close runs
	shutdownOnSignal()

	http.HandleFunc("/", serveHTTP)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("Serving the puzzle workshop")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.WithError(err).Fatal("Listener failure")
	}
}

// shutdownOnSignal closes storage and exits when the process is
// interrupted.
func shutdownOnSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-c
		log.WithField("signal", s).Info("Shutting down")
		storage.Close()
		os.Exit(0)
	}()
}

// serveHTTP is the single entry point; it routes to the static,
// page, and API handlers.
func serveHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if client.StaticHandler(w, r) {
		return
	}

	session := sessionSelect(w, r)
	entry := log.WithFields(logrus.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"session": session.SID,
	})

	// storage failures panic back to here
	defer func() {
		if rec := recover(); rec != nil {
			entry.WithField("panic", rec).Error("Handler failure")
			http.Error(w, "storage failure", http.StatusInternalServerError)
		}
	}()

	switch r.URL.Path {
	case "/", "/workshop":
		servePage(w, r, session)
	case "/api/solve":
		_, err := puzzle.SolveHandler(w, r)
		logOutcome(entry, err)
	case "/api/clues":
		_, err := puzzle.CluesHandler(w, r)
		logOutcome(entry, err)
	case "/api/disambiguate":
		_, err := puzzle.DisambiguateHandler(w, r)
		logOutcome(entry, err)
	case "/api/reset":
		serveReset(w, r, session)
	case "/api/undo":
		serveUndo(w, r, session)
	default:
		http.NotFound(w, r)
	}
	entry.WithField("elapsed", time.Since(start)).Info("Request served")
}

// logOutcome notes handler-level errors; the handler has already
// told the client.
func logOutcome(entry *logrus.Entry, err error) {
	if err != nil {
		entry.WithError(err).Warn("Request failed")
	}
}

// servePage renders the session's current working grid.
func servePage(w http.ResponseWriter, r *http.Request, session *storage.Session) {
	if session.Summary == nil {
		http.Error(w, "no puzzle in this session", http.StatusNotFound)
		return
	}
	status := solveStatus(session.Summary)
	w.Header().Add("Content-Type", "text/html")
	fmt.Fprint(w, client.WorkshopPage(session.SID, session.PID, session.Summary, status))
}

// serveReset points the session back at a stored puzzle, by the
// pid query parameter or the default.
func serveReset(w http.ResponseWriter, r *http.Request, session *storage.Session) {
	pid := r.FormValue("pid")
	if pid == "" {
		pid = defaultPuzzleID()
	}
	if err := session.StartPuzzle(pid); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	servePage(w, r, session)
}

// serveUndo drops the session's last editing step.
func serveUndo(w http.ResponseWriter, r *http.Request, session *storage.Session) {
	session.RemoveStep()
	servePage(w, r, session)
}

// solveStatus grades the session's working grid for the page
// header.
func solveStatus(s *puzzle.Summary) string {
	p, err := puzzle.New(s)
	if err != nil {
		return err.Error()
	}
	res := p.Solve(nil)
	if res.Status == puzzle.Ambiguous {
		return fmt.Sprintf("%v (%d cells)", res.Status, len(res.Unsolved))
	}
	if id := p.Signature(); res.Status == puzzle.Solved || res.Status == puzzle.Contradiction {
		storage.SaveReport(id, res)
	}
	return res.Status.String()
}

// defaultPuzzleID picks the first stored puzzle.
func defaultPuzzleID() string {
	_, ids := storage.ListPuzzles()
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

/*

sessions

*/

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
//
// Each browser gets a cookie based on the time (to the
// nanosecond) of the first request we received from it; the
// browser's notion of session cookie lifetime controls the
// extent of the session.  Proxied deployments report the
// original protocol in a header, and sessions are kept
// per-protocol so HTTP and HTTPS tabs don't fight over a
// shared cookie.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	proto := "httpx" // absent other indicators, protocol is unknown

	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		proto = forwarded
	}

	// check for an existing cookie whose value matches the protocol
	if sc, e := r.Cookie(cookieName); e == nil {
		if m, e := regexp.MatchString(proto+"-[0-9a-z]{3,}", sc.Value); e == nil && m {
			return sc.Value
		}
	}

	// no session cookie or not a valid session cookie,
	// start a new session with a new cookie
	sid := proto + "-" + strconv.FormatInt(int64(time.Since(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	return sid
}

// sessionSelect loads the session for the request's cookie,
// starting a fresh one on the default puzzle if the cookie is
// new.
func sessionSelect(w http.ResponseWriter, r *http.Request) *storage.Session {
	session := &storage.Session{SID: getCookie(w, r)}
	if session.Lookup() {
		session.LoadStep()
		return session
	}
	if pid := defaultPuzzleID(); pid != "" {
		if err := session.StartPuzzle(pid); err != nil {
			log.WithError(err).Warn("Couldn't start the default puzzle")
		}
	}
	return session
}
