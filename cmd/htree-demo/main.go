// Command htree-demo walks a history tree through add/change/undo steps with
// a small payload store, printing the visible tree after each one.
package main

import (
	"fmt"
	"os"

	"github.com/PistonDevelopers/history-tree/store"
)

func main() {
	s := store.New("root")
	root := s.Root()

	assets, err := s.Add(root, "assets")
	check(err)
	_, err = s.Add(assets, "syntax")
	check(err)
	dump(s, assets)

	fmt.Println("---- change ----")
	assets, err = s.Change(assets, "assets*")
	check(err)
	dump(s, assets)

	fmt.Println("---- undo ----")
	s.Undo()
	children, err := s.Children(root)
	check(err)
	assets = children[0]
	dump(s, assets)

	fmt.Println("---- add ----")
	_, err = s.Add(assets, "hello")
	check(err)
	children, err = s.Children(root)
	check(err)
	assets = children[0]
	dump(s, assets)
}

func dump(s *store.Store[string], parent int) {
	check(s.Print(os.Stdout, parent))
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
