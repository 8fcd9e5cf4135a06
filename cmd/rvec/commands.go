package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chazu/rvec/store"
	"github.com/chazu/rvec/vec/dist"
)

func put(ctx context.Context, b backend, args []string) error {
	fs := flag.NewFlagSet("put", flag.ExitOnError)
	name := fs.String("name", "", "Vector name")
	file := fs.String("file", "", "TOML vector literal")
	fs.Parse(args)

	if *name == "" || *file == "" {
		return fmt.Errorf("put: -name and -file are required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	v, err := ParseLiteral(data)
	if err != nil {
		return fmt.Errorf("put: %s: %w", *file, err)
	}
	w, err := dist.FromValue(v)
	if err != nil {
		return err
	}

	resp, err := b.Put(ctx, &dist.PutRequest{Name: *name, Vector: w})
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s[%d]\n", *name, v.Kind(), resp.Length)
	return nil
}

func get(ctx context.Context, b backend, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	name := fs.String("name", "", "Vector name")
	fs.Parse(args)

	resp, err := b.Get(ctx, &dist.GetRequest{Name: *name})
	if err != nil {
		return err
	}
	v, err := resp.Vector.ToVector()
	if err != nil {
		return err
	}
	fmt.Println(Format(v))
	return nil
}

// errCheckFailed makes rvec exit with status 1 without printing an error.
var errCheckFailed = errors.New("check failed")

func check(ctx context.Context, b backend, args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	name := fs.String("name", "", "Vector name")
	pred := fs.String("pred", "vector", "Predicate name")
	n := fs.Int("n", -1, "Exact length (negative for any)")
	finite := fs.String("finite", "any", "Finiteness requirement: any, true or false")
	fs.Parse(args)

	resp, err := b.Check(ctx, &dist.CheckRequest{Name: *name, Predicate: *pred, Length: *n, Finite: *finite})
	if err != nil {
		return err
	}
	fmt.Println(resp.Result)
	if !resp.Result {
		return errCheckFailed
	}
	return nil
}

func poke(ctx context.Context, b backend, args []string) error {
	fs := flag.NewFlagSet("poke", flag.ExitOnError)
	dest := fs.String("dest", "", "Destination vector")
	offset := fs.Int("offset", 0, "Destination offset (0-based)")
	src := fs.String("src", "", "Source vector")
	from := fs.Int("from", 0, "Source start (0-based)")
	n := fs.Int("n", 0, "Element count")
	to := fs.Int("to", -1, "Inclusive source end; overrides -n when set")
	fs.Parse(args)

	req := &dist.PokeRequest{Dest: *dest, Offset: *offset, Source: *src, From: *from, Count: *n}
	if *to >= 0 {
		req.To = to
	}
	resp, err := b.Poke(ctx, req)
	if err != nil {
		return err
	}
	v, err := resp.Vector.ToVector()
	if err != nil {
		return err
	}
	fmt.Println(Format(v))
	return nil
}

func list(ctx context.Context, st *store.Store) error {
	entries, err := st.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%-20s %s[%d]\n", e.Name, e.Kind, e.Length)
	}
	return nil
}
