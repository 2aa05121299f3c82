package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/paulstansifer/convert-nonogram/puzzle"
)

// A Session tracks a designer's progress constructing one
// puzzle.  Behind the scenes, we persist every grid the designer
// has stepped through (each step is usually one disambiguation
// edit), so earlier versions can be restored (undo).
type Session struct {
	// these elements are persisted as part of the session
	SID     string // session ID
	PID     string // ID of the puzzle being worked on
	Step    int    // current step
	Created string // RFC3339 time when the session was created
	Saved   string // RFC3339 time when the session was last saved

	// these elements are persisted in the steps, serialized as JSON
	Summary *puzzle.Summary `redis:"-"` // working grid at the current step
}

/*

session manipulation

*/

// StartPuzzle: point the session at a stored puzzle and reset
// its step trail to the puzzle's own grid.
func (session *Session) StartPuzzle(pid string) error {
	summary, ok := LoadPuzzle(pid)
	if !ok {
		return fmt.Errorf("no stored puzzle %q", pid)
	}
	session.PID = pid
	session.Summary = summary

	// update the cache
	if session.Created == "" {
		session.Created = time.Now().Format(time.RFC3339)
	}
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step = 1
	bytes := session.marshalStep()
	body := func() (err error) {
		rdc.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		rdc.Send("DEL", session.stepsKey())
		_, err = rdc.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of session %q after reset: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Reset session %v to work on puzzle %q.", session.SID, session.PID)
	return nil
}

// AddStep: record a new working grid, usually the result of
// applying one disambiguation edit.
func (session *Session) AddStep(summary *puzzle.Summary) {
	session.Summary = summary

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step++
	bytes := session.marshalStep()
	body := func() (err error) {
		rdc.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = rdc.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of %s:%q step %d: %v",
				session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Added session %v:%v step %d.", session.SID, session.PID, session.Step)
}

// RemoveStep: remove the last step and restore the prior step's
// working grid.
func (session *Session) RemoveStep() {
	if session.Step <= 1 {
		// nothing to do
		return
	}

	// load the prior grid from the cache
	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step--
	session.Summary = nil // free the current step's summary
	body := func() (err error) {
		rdc.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		rdc.Send("LTRIM", session.stepsKey(), 0, -2)
		bytes, err = redis.Bytes(rdc.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on remove to %s:%q step %d: %v",
				session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.Printf("Reverted session %v:%v to step %d.", session.SID, session.PID, session.Step)
}

// Lookup: lookup a session for an ID
func (session *Session) Lookup() (found bool) {
	body := func() error {
		vals, err := redis.Values(rdc.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				log.Printf("Redis error on parse of saved session %q: %v", session.SID, err)
				return err
			}
			found = true
			return nil
		}
		if err != nil {
			log.Printf("Redis error on GET of session %q pid: %v", session.SID, err)
			return err
		}
		return nil
	}
	rdExecute(body)
	return
}

// LoadStep: load the current step from the saved summary
func (session *Session) LoadStep() {
	var bytes []byte
	body := func() (err error) {
		bytes, err = redis.Bytes(rdc.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on load of %s:%q step %d: %v",
				session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
}

/*

serialization of working grids into and out of the cache

*/

// marshalStep - get JSON for the current step
func (session *Session) marshalStep() []byte {
	bytes, err := json.Marshal(session.Summary)
	if err != nil {
		log.Printf("Failed to marshal summary of %s:%q step %d as JSON: %v",
			session.SID, session.PID, session.Step, err)
		panic(err)
	}
	return bytes
}

// unmarshalStep - get the working grid for the saved step
func (session *Session) unmarshalStep(bytes []byte) {
	var summary *puzzle.Summary
	err := json.Unmarshal(bytes, &summary)
	if err != nil {
		log.Printf("Failed to unmarshal saved JSON of %s:%q step %d: %v",
			session.SID, session.PID, session.Step, err)
		panic(err)
	}
	session.Summary = summary
}

/*

session key generation

*/

// key - returns the session key
func (session *Session) key() string {
	return "SID:" + session.SID
}

// stepsKey - returns the key for the session's step array
func (session *Session) stepsKey() string {
	return session.key() + ":Steps"
}

/*

small shared helpers

*/

// redisBytes is redis.Bytes with the nil reply treated as an
// empty (not erroneous) result.
func redisBytes(reply interface{}, err error) ([]byte, error) {
	bytes, err := redis.Bytes(reply, err)
	if err == redis.ErrNil {
		return nil, nil
	}
	return bytes, err
}

// ctx is the context for database calls; storage is synchronous
// by design.
func ctx() context.Context {
	return context.Background()
}
