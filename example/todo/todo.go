// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command todo is a small task tracker demonstrating the freyja
// framework: a primary application class, a mounted admin class with a
// nested group, positional arguments, choices, collections, and the
// built-in utility group.
//
// Try:
//
//	todo add "write docs" --tags=docs,urgent
//	todo list --sort=due
//	todo --store=/tmp/alt.json done 3
//	todo admin database vacuum --timeout=10s
//	todo tools schema
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/terracoil/freyja-sub000/pkg/cmdutil"
	"github.com/terracoil/freyja-sub000/pkg/freyja"
)

// Todo is the primary class: its fields are global flags and its
// methods are top-level commands.
type Todo struct {
	Store   freyja.Path `default:"~/.todo.json" help:"Task database file"`
	Verbose bool        `default:"false" help:"Enable verbose output"`
}

type task struct {
	ID    int       `json:"id"`
	Title string    `json:"title"`
	Tags  []string  `json:"tags,omitempty"`
	Due   time.Time `json:"due"`
	Done  bool      `json:"done"`
}

type AddArgs struct {
	Title string        `help:"Task title"`
	Tags  []string      `default:"" help:"Labels for the task"`
	In    time.Duration `default:"24h" help:"Time until the task is due"`
}

func (t *Todo) Add(a AddArgs) error {
	tasks, err := t.load()
	if err != nil {
		return err
	}
	id := 1
	for _, tk := range tasks {
		if tk.ID >= id {
			id = tk.ID + 1
		}
	}
	tasks = append(tasks, task{ID: id, Title: a.Title, Tags: a.Tags, Due: time.Now().Add(a.In)})
	if err := t.save(tasks); err != nil {
		return err
	}
	if t.Verbose {
		log.Printf("todo: added task %d to %s", id, t.Store)
	}
	fmt.Printf("added %d: %s\n", id, a.Title)
	return nil
}

type ListArgs struct {
	Sort string `default:"id" choices:"id,title,due" help:"Sort order"`
	All  bool   `default:"false" help:"Include completed tasks"`
}

func (t *Todo) List(a ListArgs) error {
	tasks, err := t.load()
	if err != nil {
		return err
	}
	sort.Slice(tasks, func(i, j int) bool {
		switch a.Sort {
		case "title":
			return tasks[i].Title < tasks[j].Title
		case "due":
			return tasks[i].Due.Before(tasks[j].Due)
		}
		return tasks[i].ID < tasks[j].ID
	})
	for _, tk := range tasks {
		if tk.Done && !a.All {
			continue
		}
		mark := " "
		if tk.Done {
			mark = "x"
		}
		fmt.Printf("[%s] %3d  %s\n", mark, tk.ID, tk.Title)
	}
	return nil
}

type DoneArgs struct {
	ID int `help:"Task to mark complete"`
}

func (t *Todo) Done(a DoneArgs) error {
	tasks, err := t.load()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == a.ID {
			tasks[i].Done = true
			return t.save(tasks)
		}
	}
	return fmt.Errorf("no task with id %d", a.ID)
}

func (t *Todo) load() ([]task, error) {
	data, err := os.ReadFile(string(t.Store))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tasks []task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("corrupt task database %s: %w", t.Store, err)
	}
	return tasks, nil
}

func (t *Todo) save(tasks []task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(string(t.Store), data, 0o644)
}

// Admin is a mounted class: it appears as the "admin" group, and its
// fields are flags scoped to that group.
type Admin struct {
	Store freyja.Path `default:"~/.todo.json" help:"Task database file"`
	Force bool        `default:"false" help:"Skip confirmation prompts"`
}

func (a *Admin) Reset() error {
	if !a.Force {
		ok, err := cmdutil.Confirm(os.Stdin, os.Stderr, fmt.Sprintf("Delete all tasks in %s?", a.Store))
		if err != nil {
			return err
		}
		if !ok {
			return &freyja.ExitError{Code: 1}
		}
	}
	return os.RemoveAll(string(a.Store))
}

// Database nests under Admin as "admin database".
type Database struct {
	Timeout time.Duration `default:"5s" help:"Operation deadline"`
}

func (d *Database) Vacuum() error {
	fmt.Printf("vacuum complete in under %s\n", d.Timeout)
	return nil
}

func main() {
	cli, err := freyja.New(
		freyja.Program{
			Name:    "todo",
			Version: "0.3.0",
			Summary: "A tiny task tracker",
		},
		freyja.Class(&Admin{}, freyja.Group(&Database{})),
		freyja.Class(&Todo{}),
	)
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(cli.Run(os.Args[1:]))
}
