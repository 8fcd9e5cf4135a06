package server

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/tliron/commonlog"

	"github.com/chazu/rvec/store"
	"github.com/chazu/rvec/vec"
	"github.com/chazu/rvec/vec/dist"
)

// Procedure paths of the vector service.
const (
	ServiceName    = "rvec.v1.VectorService"
	PutProcedure   = "/" + ServiceName + "/Put"
	GetProcedure   = "/" + ServiceName + "/Get"
	CheckProcedure = "/" + ServiceName + "/Check"
	PokeProcedure  = "/" + ServiceName + "/Poke"
)

// VectorService implements the vector service handlers.
type VectorService struct {
	worker *Worker
	log    commonlog.Logger
}

// NewVectorService creates a VectorService.
func NewVectorService(worker *Worker) *VectorService {
	return &VectorService{
		worker: worker,
		log:    commonlog.GetLogger("rvec.server"),
	}
}

// Put stores a vector under a name.
func (s *VectorService) Put(
	ctx context.Context,
	req *connect.Request[dist.PutRequest],
) (*connect.Response[dist.PutResponse], error) {
	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name is required"))
	}
	v, err := req.Msg.Vector.ToVector()
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	_, err = s.worker.Do(ctx, func(rt *Runtime) (any, error) {
		return nil, rt.Store.Put(ctx, req.Msg.Name, v)
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dist.PutResponse{Length: v.Len()}), nil
}

// Get fetches a stored vector.
func (s *VectorService) Get(
	ctx context.Context,
	req *connect.Request[dist.GetRequest],
) (*connect.Response[dist.GetResponse], error) {
	result, err := s.worker.Do(ctx, func(rt *Runtime) (any, error) {
		return rt.Store.Get(ctx, req.Msg.Name)
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	w, err := dist.FromValue(result.(*vec.Vector))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&dist.GetResponse{Vector: w}), nil
}

// Check runs a predicate against a stored vector.
func (s *VectorService) Check(
	ctx context.Context,
	req *connect.Request[dist.CheckRequest],
) (*connect.Response[dist.CheckResponse], error) {
	finite, err := ParseFinite(req.Msg.Finite)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	result, err := s.worker.Do(ctx, func(rt *Runtime) (any, error) {
		x, err := rt.Store.Get(ctx, req.Msg.Name)
		if err != nil {
			return nil, err
		}
		ok, err := Check(x, req.Msg.Predicate, req.Msg.Length, finite)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return ok, nil
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&dist.CheckResponse{Result: result.(bool)}), nil
}

// Poke copies an element range between two stored vectors, coercing the
// source when kinds differ, and stores the updated destination.
func (s *VectorService) Poke(
	ctx context.Context,
	req *connect.Request[dist.PokeRequest],
) (*connect.Response[dist.PokeResponse], error) {
	m := req.Msg
	n := m.Count
	if m.To != nil {
		n = *m.To - m.From + 1
	}
	if m.Offset < 0 || m.From < 0 || n < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("offset, from and count must not be negative"))
	}

	result, err := s.worker.Do(ctx, func(rt *Runtime) (any, error) {
		dst, err := rt.Store.Get(ctx, m.Dest)
		if err != nil {
			return nil, err
		}
		src, err := rt.Store.Get(ctx, m.Source)
		if err != nil {
			return nil, err
		}
		if n > dst.Len()-m.Offset || n > src.Len()-m.From {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("range out of bounds: %s[%d] at %d, %s[%d] from %d, count %d",
					m.Dest, dst.Len(), m.Offset, m.Source, src.Len(), m.From, n))
		}

		if err := rt.Copier.PokeCoerce(dst, m.Offset, src, m.From, n); err != nil {
			return nil, err
		}
		if err := rt.Store.Put(ctx, m.Dest, dst); err != nil {
			return nil, err
		}
		return dst, nil
	})
	if err != nil {
		s.log.Warningf("poke %s <- %s: %v", m.Dest, m.Source, err)
		return nil, toConnectError(err)
	}

	w, err := dist.FromValue(result.(*vec.Vector))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&dist.PokeResponse{Vector: w}), nil
}

// toConnectError maps runtime errors onto Connect codes.
func toConnectError(err error) error {
	var ce *connect.Error
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, ErrWorkerStopped):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, store.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, vec.ErrObjectSplice),
		errors.Is(err, vec.ErrNoCoercion),
		errors.Is(err, vec.ErrCoercerKind):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
