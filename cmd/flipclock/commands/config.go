package commands

// ConfigCmd implements the 'config' command.
type ConfigCmd struct{}

func (c *ConfigCmd) Run(g *Global, root *CLI) error {
	resolved, err := root.Resolve()
	if err != nil {
		return err
	}
	data, err := resolved.Marshal()
	if err != nil {
		return err
	}
	_, err = g.Stdout.Write(data)
	return err
}
