package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/sitemaint/internal/config"
	"github.com/conn-castle/sitemaint/internal/messages"
	"github.com/conn-castle/sitemaint/internal/root"
)

// resolveSiteRoot picks the site root: the --root flag, then SITEMAINT_ROOT, then discovery from the working directory.
func resolveSiteRoot(flagValue string) (string, error) {
	if explicit := strings.TrimSpace(flagValue); explicit != "" {
		return explicitSiteRoot(explicit)
	}
	if hint, ok := lookupEnv(config.SiteRootEnvVar); ok && strings.TrimSpace(hint) != "" {
		return explicitSiteRoot(strings.TrimSpace(hint))
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	siteRoot, found, err := root.FindSiteRoot(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.New(messages.RootMissingSite)
	}
	return siteRoot, nil
}

// explicitSiteRoot validates a user-supplied root without requiring any marker file in it.
func explicitSiteRoot(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigSiteRootExpandFmt, path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigSiteRootResolveFmt, expanded, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf(messages.RootStatFailedFmt, abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(messages.RootPathNotDirFmt, abs)
	}
	return abs, nil
}
