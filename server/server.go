package server

import (
	"net"
	"net/http"

	"connectrpc.com/connect"
	"github.com/tliron/commonlog"
)

// Server is the vector service wrapping a runtime. It serves Connect,
// gRPC and gRPC-Web on the same port; gRPC clients may use cleartext
// HTTP/2.
type Server struct {
	worker *Worker
	mux    *http.ServeMux
	http   *http.Server
	log    commonlog.Logger
}

// New creates a Server wrapping the given runtime.
func New(rt *Runtime) *Server {
	worker := NewWorker(rt)
	s := &Server{
		worker: worker,
		mux:    http.NewServeMux(),
		log:    commonlog.GetLogger("rvec.server"),
	}

	svc := NewVectorService(worker)
	codec := connect.WithCodec(cborCodec{})
	s.mux.Handle(PutProcedure, connect.NewUnaryHandler(PutProcedure, svc.Put, codec))
	s.mux.Handle(GetProcedure, connect.NewUnaryHandler(GetProcedure, svc.Get, codec))
	s.mux.Handle(CheckProcedure, connect.NewUnaryHandler(CheckProcedure, svc.Check, codec))
	s.mux.Handle(PokeProcedure, connect.NewUnaryHandler(PokeProcedure, svc.Poke, codec))

	protocols := new(http.Protocols)
	protocols.SetHTTP1(true)
	protocols.SetUnencryptedHTTP2(true)
	s.http = &http.Server{Handler: s.mux, Protocols: protocols}

	return s
}

// Handler returns the HTTP handler serving the vector service.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the server on the given address.
// The address should be in the form "host:port" or ":port".
func (s *Server) ListenAndServe(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Stop is called.
func (s *Server) Serve(l net.Listener) error {
	s.log.Noticef("vector service listening on %s", l.Addr())
	s.log.Infof("  Connect: http://%s%s", l.Addr(), CheckProcedure)
	err := s.http.Serve(l)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts down the server and its worker.
func (s *Server) Stop() {
	s.http.Close()
	s.worker.Stop()
}
