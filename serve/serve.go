package serve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/PistonDevelopers/history-tree/feed"
	"github.com/PistonDevelopers/history-tree/tree"
)

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.once.Do(func() { h.sessionCh = newSessionSource() })

	options := &websocket.AcceptOptions{InsecureSkipVerify: h.SkipOriginVerify}
	sock, err := websocket.Accept(w, r, options)
	if err != nil {
		log.Printf("got err setting up websocket %s: %v", r.URL.Path, err)
		http.Error(w, "could not set up websocket", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	err = h.runSocket(ctx, sock)
	cancel(err)

	var closeError websocket.CloseError
	if errors.As(err, &closeError) {
		sock.Close(closeError.Code, closeError.Reason)
	} else if err != nil && err != context.Canceled {
		log.Printf("shutdown socket due to error: %v", err)
		sock.Close(websocket.StatusInternalError, "")
	} else {
		sock.Close(websocket.StatusNormalClosure, "")
	}
}

func (h *Handler) runSocket(ctx context.Context, sock *websocket.Conn) error {
	helloCtx, helloCancel := context.WithTimeout(ctx, helloTimeout)
	defer helloCancel()

	var hello helloMessage
	if err := wsjson.Read(helloCtx, sock, &hello); err != nil {
		return err
	}
	if hello.Protocol != "1" {
		return websocket.CloseError{
			Code:   SocketCodeUnknownProtocol,
			Reason: fmt.Sprintf("unknown protocol: %v", hello.Protocol),
		}
	}

	session := <-h.sessionCh

	err := wsjson.Write(helloCtx, sock, helloResponse{
		Ok:      true,
		Session: session,
		Root:    h.Tree.Root(),
		Cursor:  h.Tree.Cursor(),
		Limit:   h.OpLimit,
	})
	if err != nil {
		return err
	}

	// responses and pushed events interleave on the socket
	var sendMu sync.Mutex
	send := func(m serverMessage) error {
		sendMu.Lock()
		defer sendMu.Unlock()
		return wsjson.Write(ctx, sock, m)
	}

	eg, groupCtx := errgroup.WithContext(ctx)

	limiter := buildLimiter(h.OpLimit)
	eg.Go(func() error {
		for {
			var req opRequest
			if err := wsjson.Read(groupCtx, sock, &req); err != nil {
				return err
			}
			if !limiter.Allow() {
				return websocket.CloseError{Code: SocketCodeExcessTraffic}
			}

			out, err := h.dispatch(req)
			if err != nil {
				return err
			}
			if err := send(out); err != nil {
				return err
			}
		}
	})

	if h.Feed != nil {
		l := h.Feed.Join(groupCtx)
		eg.Go(func() error {
			for ev := range l.Iter() {
				m := serverMessage{Event: &ev, Cursor: ev.Cursor}
				if err := send(m); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return eg.Wait()
}

func (h *Handler) dispatch(req opRequest) (serverMessage, error) {
	out := serverMessage{ID: req.ID}

	fail := func(err error) (serverMessage, error) {
		out.Err = errName(err)
		out.Cursor = h.Tree.Cursor()
		return out, nil
	}

	switch req.Op {
	case "add", "change", "delete":
		h.writerMu.Lock()
		var id int
		var err error
		switch req.Op {
		case "add":
			id, err = h.Tree.Add(req.Target)
		case "change":
			id, err = h.Tree.Change(req.Target)
		default:
			id, err = h.Tree.Delete(req.Target)
		}
		if err == nil && h.Feed != nil {
			h.Feed.Publish(feed.Event{Op: opFor(req.Op), Index: id, Cursor: id})
		}
		h.writerMu.Unlock()

		if err != nil {
			return fail(err)
		}
		out.Index = &id
		out.Cursor = id

	case "undo", "redo":
		h.writerMu.Lock()
		var moved bool
		if req.Op == "undo" {
			moved = h.Tree.Undo()
		} else {
			moved = h.Tree.Redo()
		}
		cursor := h.Tree.Cursor()
		if moved && h.Feed != nil {
			h.Feed.Publish(feed.Event{Op: opFor(req.Op), Index: -1, Cursor: cursor})
		}
		h.writerMu.Unlock()

		out.Moved = &moved
		out.Cursor = cursor

	case "children":
		var ids []int
		var err error
		if req.Cursor != nil {
			ids, err = h.Tree.ChildrenAt(req.Target, *req.Cursor)
		} else {
			ids, err = h.Tree.Children(req.Target)
		}
		if err != nil {
			return fail(err)
		}
		out.Children = ids
		out.Cursor = h.Tree.Cursor()

	case "get":
		r, err := h.Tree.Get(req.Target)
		if err != nil {
			return fail(err)
		}
		rm := recordMessage{Kind: r.Kind.String()}
		if r.Parent != tree.None {
			p := r.Parent
			rm.Parent = &p
		}
		if r.Prev != tree.None {
			p := r.Prev
			rm.Prev = &p
		}
		out.Record = &rm
		out.Cursor = h.Tree.Cursor()

	default:
		return out, websocket.CloseError{
			Code:   SocketCodeBadOp,
			Reason: fmt.Sprintf("unknown op: %v", req.Op),
		}
	}

	return out, nil
}

func errName(err error) string {
	switch {
	case errors.Is(err, tree.ErrUnknownParent):
		return "unknown_parent"
	case errors.Is(err, tree.ErrUnknownTarget):
		return "unknown_target"
	case errors.Is(err, tree.ErrOutOfRange):
		return "out_of_range"
	}
	return "internal"
}

func opFor(op string) feed.Op {
	switch op {
	case "add":
		return feed.OpAdd
	case "change":
		return feed.OpChange
	case "delete":
		return feed.OpDelete
	case "undo":
		return feed.OpUndo
	}
	return feed.OpRedo
}
